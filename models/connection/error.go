package connection

import "fmt"

// What the session loop should do after a connection error
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

type ConnErr struct {
	code uint8
	desc string
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) Error() string {
	return fmt.Sprintf("connection error - code: %d\tdesc: %s", c.code, c.desc)
}

func (c ConnErr) Code() uint8 {
	return c.code
}

// Two ConnErr match on code alone so callers can use errors.Is
// against NewConnErr(code).
func (c ConnErr) Is(target error) bool {
	t, ok := target.(ConnErr)
	return ok && t.code == c.code
}
