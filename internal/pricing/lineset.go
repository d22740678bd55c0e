package pricing

import "github.com/anphat-erp/anphat-erp/internal/catalog"

// LineSet is the working state of a quote being built: cabinet lines keyed by
// department id (one line per checked department) and accessory lines keyed by
// a local id. All mutations funnel through the single recompute path.
type LineSet struct {
	policy BoundsPolicy

	lines     map[int64]*Line
	lineOrder []int64

	accessories map[int64]*AccessoryLine
	accOrder    []int64
	nextAccID   int64
}

// NewLineSet creates an empty working set governed by the given bounds policy.
func NewLineSet(policy BoundsPolicy) *LineSet {
	return &LineSet{
		policy:      policy,
		lines:       make(map[int64]*Line),
		accessories: make(map[int64]*AccessoryLine),
		nextAccID:   1,
	}
}

// Upsert returns the cabinet line for a department, creating it when the
// department was just checked. Quantity starts at 1.
func (s *LineSet) Upsert(dept catalog.Department) *Line {
	if line, ok := s.lines[dept.ID]; ok {
		return line
	}
	line := &Line{
		DepartmentID:   dept.ID,
		DepartmentCode: dept.Code,
		Selection:      Selection{DepartmentID: dept.ID},
		Quantity:       1,
	}
	s.lines[dept.ID] = line
	s.lineOrder = append(s.lineOrder, dept.ID)
	return line
}

// Line returns the cabinet line for a department, or nil.
func (s *LineSet) Line(departmentID int64) *Line {
	return s.lines[departmentID]
}

// Remove drops the cabinet line for an unchecked department.
func (s *LineSet) Remove(departmentID int64) {
	if _, ok := s.lines[departmentID]; !ok {
		return
	}
	delete(s.lines, departmentID)
	for i, id := range s.lineOrder {
		if id == departmentID {
			s.lineOrder = append(s.lineOrder[:i], s.lineOrder[i+1:]...)
			break
		}
	}
}

// Bounds returns the clamping bounds for a department code.
func (s *LineSet) Bounds(departmentCode string) Bounds {
	return s.policy.For(departmentCode)
}

// SetSelection updates a line's material selection and re-resolves the product
// against the catalog snapshot. Incomplete selections and failed lookups reset
// every derived field in the same update.
func (s *LineSet) SetSelection(snap *catalog.Snapshot, departmentID int64, sel Selection) *Line {
	line := s.lines[departmentID]
	if line == nil {
		return nil
	}
	sel.DepartmentID = departmentID
	line.Selection = sel

	if !sel.Complete() {
		Reset(line)
		return line
	}

	product := ResolveProduct(snap.Products, sel, line.Product)
	if product == nil {
		Reset(line)
		return line
	}
	detail, ok := snap.DetailFor(product.ID)
	if !ok {
		Reset(line)
		return line
	}
	ApplyProductDetail(line, product, detail, s.policy.For(line.DepartmentCode))
	return line
}

// Lines returns the cabinet lines in insertion order.
func (s *LineSet) Lines() []Line {
	out := make([]Line, 0, len(s.lineOrder))
	for _, id := range s.lineOrder {
		out = append(out, *s.lines[id])
	}
	return out
}

// AddAccessory appends a new empty accessory line.
func (s *LineSet) AddAccessory() *AccessoryLine {
	line := &AccessoryLine{ID: s.nextAccID, Quantity: 1}
	s.accessories[line.ID] = line
	s.accOrder = append(s.accOrder, line.ID)
	s.nextAccID++
	return line
}

// AccessoryLine returns an accessory line by its local id, or nil.
func (s *LineSet) AccessoryLine(id int64) *AccessoryLine {
	return s.accessories[id]
}

// RemoveAccessory deletes an accessory line.
func (s *LineSet) RemoveAccessory(id int64) {
	if _, ok := s.accessories[id]; !ok {
		return
	}
	delete(s.accessories, id)
	for i, accID := range s.accOrder {
		if accID == id {
			s.accOrder = append(s.accOrder[:i], s.accOrder[i+1:]...)
			break
		}
	}
}

// AccessoryLines returns the accessory lines in insertion order.
func (s *LineSet) AccessoryLines() []AccessoryLine {
	out := make([]AccessoryLine, 0, len(s.accOrder))
	for _, id := range s.accOrder {
		out = append(out, *s.accessories[id])
	}
	return out
}

// Total sums every line amount, cabinet and accessory alike. It is always
// recomputed from the live set, never cached.
func (s *LineSet) Total() float64 {
	var total float64
	for _, id := range s.lineOrder {
		total += s.lines[id].Amount
	}
	for _, id := range s.accOrder {
		total += s.accessories[id].Amount
	}
	return total
}

// Total sums amounts over already materialised lines, treating zero values as
// zero contribution.
func Total(lines []Line, accessories []AccessoryLine) float64 {
	var total float64
	for i := range lines {
		total += lines[i].Amount
	}
	for i := range accessories {
		total += accessories[i].Amount
	}
	return total
}
