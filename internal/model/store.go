package model

// Record kinds, one per handler. They key the Store.
const (
	KindScript     = "script"
	KindSettings   = "settings"
	KindAccount    = "account"
	KindCommonStep = "commonStep"
)

// Store is the keyed in-memory model of one workbook. Handlers append to
// it in sheet order; the translator only reads it.
type Store struct {
	Features []*Feature
	Settings *Settings
	Accounts []AccountInfo
	Utils    []*CommonUtilClass
}

func NewStore() *Store {
	return &Store{Settings: NewSettings()}
}

// Count returns the number of records held for kind.
func (s *Store) Count(kind string) int {
	switch kind {
	case KindScript:
		return len(s.Features)
	case KindSettings:
		return len(s.Settings.Capabilities) + len(s.Settings.DriverProperties)
	case KindAccount:
		return len(s.Accounts)
	case KindCommonStep:
		return len(s.Utils)
	}
	return 0
}

// AccountIndex maps account type to account. When a type repeats, the
// first account wins and the later type names are returned as duplicates.
func (s *Store) AccountIndex() (map[string]AccountInfo, []string) {
	index := make(map[string]AccountInfo, len(s.Accounts))
	var dups []string
	for _, acc := range s.Accounts {
		if _, ok := index[acc.Type]; ok {
			dups = append(dups, acc.Type)
			continue
		}
		index[acc.Type] = acc
	}
	return index, dups
}

// MethodIndex maps common method description to method. A repeated
// description resolves to the last method declared, matching sheet order
// overrides; the repeated descriptions are returned.
func (s *Store) MethodIndex() (map[string]*CommonMethod, []string) {
	index := map[string]*CommonMethod{}
	var dups []string
	for _, util := range s.Utils {
		for _, m := range util.Methods {
			if m.Description == "" {
				continue
			}
			if _, ok := index[m.Description]; ok {
				dups = append(dups, m.Description)
			}
			index[m.Description] = m
		}
	}
	return index, dups
}
