package book

type Condition string

const (
	ConditionNew       Condition = "new"
	ConditionExcellent Condition = "excellent"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionWorn      Condition = "worn"
)

func (c Condition) String() string {
	return string(c)
}

func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionExcellent, ConditionGood, ConditionFair, ConditionWorn:
		return true
	default:
		return false
	}
}

type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityReserved  Availability = "reserved"
	AvailabilityExchanged Availability = "exchanged"
)

func (a Availability) String() string {
	return string(a)
}

func (a Availability) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityReserved, AvailabilityExchanged:
		return true
	default:
		return false
	}
}
