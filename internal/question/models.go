package question

// Question is one quiz item as stored in the per-variant JSON file.
type Question struct {
	ID                  int      `json:"id"`
	Section             string   `json:"section"`
	Question            string   `json:"question"`
	Answers             []string `json:"answers"`
	IsRequiredFor65Plus bool     `json:"isRequiredFor65Plus"`
	IsDynamicAnswer     bool     `json:"isDynamicAnswer,omitempty"`
	// LastTimeUpdated is kept verbatim so a malformed stamp survives a
	// load/save cycle; staleness parsing happens in the refresh engine.
	LastTimeUpdated *string `json:"lastTimeUpdated,omitempty"`
}

func (q Question) clone() Question {
	c := q
	// an empty list must stay [] on disk, not null
	if q.Answers != nil {
		c.Answers = append(make([]string, 0, len(q.Answers)), q.Answers...)
	}
	if q.LastTimeUpdated != nil {
		s := *q.LastTimeUpdated
		c.LastTimeUpdated = &s
	}
	return c
}

type questionFile struct {
	Questions []Question `json:"questions"`
}
