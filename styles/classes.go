package styles

import (
	"slices"
	"strings"

	"atomcss/common"
)

// ClassesMap holds class names of every declaration of a slot.
type ClassesMap map[PropertyHash]Classes

// ClassNameMap is the result of resolving styles: class names per slot.
type ClassNameMap struct {
	Dir   common.Direction
	Slots map[string]ClassesMap
}

// ClassName returns space separated class names of the slot for the
// direction the map was resolved for. Names are sorted so equal maps render
// equal strings.
func (m ClassNameMap) ClassName(slot string) string {
	classes := m.Slots[slot]
	names := make([]string, 0, len(classes))
	rtl := m.Dir == common.DirectionRtl
	for _, c := range classes {
		names = append(names, c.For(rtl))
	}
	slices.Sort(names)
	return strings.Join(names, " ")
}

// ClassNames returns rendered class names of all slots.
func (m ClassNameMap) ClassNames() map[string]string {
	res := make(map[string]string, len(m.Slots))
	for slot := range m.Slots {
		res[slot] = m.ClassName(slot)
	}
	return res
}
