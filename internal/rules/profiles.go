package rules

import "fmt"

// Profile resolves a named rule-penalty preset, for CLI and config flags
// that name a soft-constraint bundle rather than spelling out each term.
func Profile(name string) (Config, error) {
	switch name {
	case "", "none":
		return Config{}, nil
	case "balanced-hands":
		return Config{Balance: HandBalance{Target: 0.5, Weight: 10}}, nil
	case "home-row-vowels":
		return Config{
			RowPreferences: []RowPreference{
				{Char: 'a', TargetRow: 2, Weight: 1},
				{Char: 'e', TargetRow: 2, Weight: 1},
				{Char: 'i', TargetRow: 2, Weight: 1},
				{Char: 'o', TargetRow: 2, Weight: 1},
				{Char: 'u', TargetRow: 2, Weight: 1},
			},
			Balance: HandBalance{Target: 0.5, Weight: 10},
		}, nil
	default:
		return Config{}, fmt.Errorf("rules: unknown profile %q", name)
	}
}

// AvailableProfiles lists the profile names Profile accepts, for CLI help
// text.
func AvailableProfiles() []string {
	return []string{"none", "balanced-hands", "home-row-vowels"}
}
