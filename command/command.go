// Package command implements the transition-to-command lookup: given the
// hue and lightness deltas between the codel being left and the codel
// being entered, which of the 17 stack operations fires.
package command

import "fmt"

// Command names one of the 17 Piet stack operations. The name matches,
// verbatim, the method the vm package dispatches through via reflection
// (vm.State.Push, vm.State.Pop, ...).
type Command int

const (
	Push Command = iota
	Pop
	Add
	Subtract
	Multiply
	Divide
	Mod
	Not
	Greater
	Pointer
	Switch
	Duplicate
	Roll
	InNumber
	InChar
	OutNumber
	OutChar
)

var names = [...]string{
	Push: "Push", Pop: "Pop", Add: "Add", Subtract: "Subtract", Multiply: "Multiply",
	Divide: "Divide", Mod: "Mod", Not: "Not", Greater: "Greater", Pointer: "Pointer",
	Switch: "Switch", Duplicate: "Duplicate", Roll: "Roll", InNumber: "InNumber",
	InChar: "InChar", OutNumber: "OutNumber", OutChar: "OutChar",
}

func (c Command) String() string {
	if int(c) < 0 || int(c) >= len(names) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return names[c]
}

// table[hueDelta][lightnessDelta] is the command named by that transition.
// table[0][0] has no entry: a (0,0) delta means the transition stayed
// inside the same block, which never happens (the traversal engine only
// forms a command when crossing into a different block).
var table = [6][3]Command{
	0: {-1, Push, Pop},
	1: {Add, Subtract, Multiply},
	2: {Divide, Mod, Not},
	3: {Greater, Pointer, Switch},
	4: {Duplicate, Roll, InNumber},
	5: {InChar, OutNumber, OutChar},
}

// Lookup returns the command named by the given hue/lightness delta pair.
// ok is false only for (0, 0), which names no command.
func Lookup(hueDelta, lightnessDelta int) (cmd Command, ok bool) {
	c := table[hueDelta][lightnessDelta]
	if hueDelta == 0 && lightnessDelta == 0 {
		return 0, false
	}
	return c, true
}
