package ast

type (
	TypeExprID uint32
	PayloadID  uint32
)

const (
	NoTypeExprID TypeExprID = 0
	NoPayloadID  PayloadID  = 0
)

func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }
func (id PayloadID) IsValid() bool  { return id != NoPayloadID }
