package salon

// Info is the single-row salon profile shown to clients and embedded
// in notification texts (address, preparation instructions).
type Info struct {
	ID               string
	Name             string
	Description      string
	Address          string
	Phone            string
	WorkingHoursText string
	PreparationText  string
	Instagram        string
}
