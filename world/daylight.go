package world

// Daylight counts the hours left for prevention work. Each applied option
// costs one hour; undoing it gives the hour back.
type Daylight struct {
	hours float64
	total float64
}

// Hours returns the hours remaining.
func (d *Daylight) Hours() float64 { return d.hours }

// Total returns the hours available at the start of the day.
func (d *Daylight) Total() float64 { return d.total }

func (d *Daylight) spend() bool {
	if d.hours < 1 {
		return false
	}
	d.hours--
	return true
}

func (d *Daylight) refund() {
	d.hours = min(d.hours+1, d.total)
}

// Stats is a snapshot of the tracker.
type Stats struct {
	Mosquitoes int
	Residents  int
	Indoor     int
	Outdoor    int
	Daylight   float64
	Passes     int
}
