package match

import "container/list"

// roundMachine walks the fixed round sequence front to back.
func newRoundMachine(rounds ...int) *roundMachine {
	machine := &roundMachine{
		transitions: list.New(),
	}

	if len(rounds) > 0 {
		machine.min = rounds[0]
		machine.max = rounds[len(rounds)-1]

		for i := range rounds {
			machine.transitions.PushBack(rounds[i])
		}

		machine.front()
	}

	return machine
}

type roundMachine struct {
	min, max    int
	round       int
	transitions *list.List
}

func (m *roundMachine) curr() int {
	return m.round
}

func (m *roundMachine) front() {
	m.round = m.transitions.Front().Value.(int)
}

func (m *roundMachine) isMax() bool {
	return m.round == m.max
}

func (m *roundMachine) next() bool {
	if m.isMax() {
		return false
	}

	for e := m.transitions.Front(); e != nil; e = e.Next() {
		if e.Value.(int) == m.round {
			m.round = e.Next().Value.(int)
			break
		}
	}

	return true
}
