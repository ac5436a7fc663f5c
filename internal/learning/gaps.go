package learning

// Knowledge gaps ("unknown unknowns") are concepts the agent noticed were
// adjacent to the user's work but probably outside their awareness. They
// feed the session-start context until a learning record marks them
// explored.

// RecordGap registers (or re-registers) a knowledge gap.
func (e *Engine) RecordGap(p GapParams) (*KnowledgeGap, error) {
	id, err := NormalizeConceptID(p.ConceptID)
	if err != nil {
		return nil, err
	}
	if p.RelatedTo == "" {
		return nil, validationErr("record gap", "related_to must not be empty")
	}
	p.ConceptID = id

	gap, err := e.store.RecordGap(p)
	if err != nil {
		return nil, storageErr("record gap", err)
	}
	return gap, nil
}

// Gaps lists registered knowledge gaps, most frequently seen first.
func (e *Engine) Gaps(limit int, includeExplored bool) ([]KnowledgeGap, error) {
	gaps, err := e.store.ListGaps(limit, includeExplored)
	if err != nil {
		return nil, storageErr("list gaps", err)
	}
	return gaps, nil
}
