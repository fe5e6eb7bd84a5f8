package render

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Mode selects what is drawn for each tile.
type Mode int

const (
	ModeColored Mode = iota
	ModeNumbered
	ModeSplit
)

var modeNames = [...]string{
	ModeColored:  "colored",
	ModeNumbered: "numbered",
	ModeSplit:    "split",
}

// Modes lists every render mode in declaration order.
func Modes() []Mode {
	return []Mode{ModeColored, ModeNumbered, ModeSplit}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts "colored", "numbered" or "split", case-insensitively.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeColored, fmt.Errorf("unknown render mode %q (want colored, numbered or split)", s)
}

func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
