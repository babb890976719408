package apps

// AppRecord is one installed app as the screens see it. Records are values:
// use WithState and WithCustomName to derive changed copies.
type AppRecord struct {
	ID         string
	Label      string
	CustomName string
	State      State
	Icon       string
	Exec       string
	File       string
	Comment    string
}

// DisplayName is the user's custom name when set, otherwise the system label.
func (r AppRecord) DisplayName() string {
	if r.CustomName != "" {
		return r.CustomName
	}
	return r.Label
}

func (r AppRecord) WithState(s State) AppRecord {
	r.State = s
	return r
}

func (r AppRecord) WithCustomName(name string) AppRecord {
	r.CustomName = name
	return r
}

func recordFromEntry(e Entry) AppRecord {
	return AppRecord{
		ID:      e.ID,
		Label:   e.Name,
		Icon:    e.Icon,
		Exec:    e.Exec,
		File:    e.File,
		Comment: e.Description,
	}
}
