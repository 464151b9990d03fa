// internal/mqtt/topics.go
package mqtt

import "strings"

// Topics builds the topic tree for one unit:
//
//	<prefix>/<unit>/state          retained JSON snapshot
//	<prefix>/<unit>/status         retained JSON health
//	<prefix>/<unit>/availability   online | offline (LWT)
//	<prefix>/<unit>/set/<field>    write commands
type Topics struct {
	Prefix string
	Unit   string
}

func (t Topics) base() string { return t.Prefix + "/" + t.Unit }

func (t Topics) State() string        { return t.base() + "/state" }
func (t Topics) Status() string       { return t.base() + "/status" }
func (t Topics) Availability() string { return t.base() + "/availability" }

// Command returns the command topic for one field, e.g. "set/setpoint_temp"
// or "set/raw/REG_TC_SP".
func (t Topics) Command(field string) string { return t.base() + "/set/" + field }

// CommandWildcard matches every command topic of the unit.
func (t Topics) CommandWildcard() string { return t.base() + "/set/#" }

// CommandField extracts the field from a command topic.
// Returns false for topics outside this unit's command tree.
func (t Topics) CommandField(topic string) (string, bool) {
	field, ok := strings.CutPrefix(topic, t.base()+"/set/")
	if !ok || field == "" {
		return "", false
	}
	return field, true
}
