package bulkchange

// Employee fields a bulk change may touch. The names double as column
// names for set-updates and as objects in the permission table.
const (
	FieldDesignation   = "designation"
	FieldGrade         = "grade"
	FieldEmployeeType  = "employee_type"
	FieldShiftType     = "shift_type"
	FieldBusinessGroup = "business_group"
	FieldDirectManager = "direct_manager"
	FieldSaral         = "saral"
)

// FieldPatch holds the requested changes over a closed key set and tracks
// which fields a sub-update has already handled. Consumed fields stay out
// of the generic apply so no value is written twice.
type FieldPatch struct {
	values   map[string]string
	consumed map[string]bool
}

func NewFieldPatch(in *GeneralFieldInput) *FieldPatch {
	p := &FieldPatch{
		values:   make(map[string]string),
		consumed: make(map[string]bool),
	}
	if in == nil {
		return p
	}

	set := func(field string, v *string) {
		if v != nil && *v != "" {
			p.values[field] = *v
		}
	}
	set(FieldDesignation, in.Designation)
	set(FieldGrade, in.Grade)
	set(FieldEmployeeType, in.EmployeeType)
	set(FieldShiftType, in.ShiftType)
	set(FieldBusinessGroup, in.BusinessGroup)
	set(FieldDirectManager, in.DirectManager)
	set(FieldSaral, in.Saral)

	return p
}

// Has reports whether the field was requested and not yet handled.
func (p *FieldPatch) Has(field string) bool {
	_, ok := p.values[field]
	return ok && !p.consumed[field]
}

func (p *FieldPatch) Get(field string) string {
	return p.values[field]
}

// Consume marks a field as handled by a dedicated sub-update.
func (p *FieldPatch) Consume(field string) {
	p.consumed[field] = true
}

// Drop removes a field the actor is not permitted to change.
func (p *FieldPatch) Drop(field string) {
	delete(p.values, field)
}

// FieldNames lists every requested field, handled or not.
func (p *FieldPatch) FieldNames() []string {
	names := make([]string, 0, len(p.values))
	for field := range p.values {
		names = append(names, field)
	}
	return names
}

// Remaining returns the unhandled fields as a column map for one generic
// set-update.
func (p *FieldPatch) Remaining() map[string]any {
	fields := make(map[string]any)
	for field, value := range p.values {
		if !p.consumed[field] {
			fields[field] = value
		}
	}
	return fields
}

func (p *FieldPatch) IsEmpty() bool {
	return len(p.values) == 0
}
