package model

// Snapshot is an in-memory host model
type Snapshot struct {
	Path      string
	elements  map[ElementID]*Element
	byUnique  map[string]*Element
	order     []ElementID
	selection []ElementID
}

// NewSnapshot creates an empty snapshot saved at path ("" for an unsaved model)
func NewSnapshot(path string) *Snapshot {
	return &Snapshot{
		Path:     path,
		elements: make(map[ElementID]*Element),
		byUnique: make(map[string]*Element),
	}
}

// Add registers an element, replacing any element with the same id
func (s *Snapshot) Add(el *Element) {
	if el.Params == nil {
		el.Params = make(map[string]Parameter)
	}
	if old, ok := s.elements[el.ID]; ok {
		delete(s.byUnique, old.UniqueID)
	} else {
		s.order = append(s.order, el.ID)
	}
	s.elements[el.ID] = el
	if el.UniqueID != "" {
		s.byUnique[el.UniqueID] = el
	}
}

// Select appends ids to the current selection
func (s *Snapshot) Select(ids ...ElementID) {
	s.selection = append(s.selection, ids...)
}

// Elements returns every element in insertion order
func (s *Snapshot) Elements() []*Element {
	out := make([]*Element, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.elements[id])
	}
	return out
}

func (s *Snapshot) Selection() []ElementID {
	out := make([]ElementID, len(s.selection))
	copy(out, s.selection)
	return out
}

func (s *Snapshot) Element(id ElementID) (*Element, bool) {
	el, ok := s.elements[id]
	return el, ok
}

func (s *Snapshot) ElementByUniqueID(uid string) (*Element, bool) {
	el, ok := s.byUnique[uid]
	return el, ok
}

func (s *Snapshot) DocumentPath() string {
	return s.Path
}

// SetParameter overwrites the text of an existing instance parameter
func (s *Snapshot) SetParameter(id ElementID, name, value string) (bool, error) {
	el, ok := s.elements[id]
	if !ok {
		return false, nil
	}
	p, ok := el.Params[name]
	if !ok {
		return false, nil
	}
	p.Kind = StorageText
	p.Text = value
	p.Display = value
	el.Params[name] = p
	return true, nil
}
