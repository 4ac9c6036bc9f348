package editor

const historyLimit = 100

// history collects applied operations into undo batches. A batch is closed when
// the outermost transaction ends.
type history struct {
	undos  [][]Operation
	redos  [][]Operation
	batch  []Operation
	saving bool
}

func (h *history) record(op Operation) {
	if !h.saving {
		return
	}
	h.batch = append(h.batch, op)
}

func (h *history) close() {
	batch := h.batch
	h.batch = nil
	if len(batch) == 0 || selectionOnly(batch) {
		return
	}
	h.undos = append(h.undos, batch)
	if len(h.undos) > historyLimit {
		h.undos = h.undos[len(h.undos)-historyLimit:]
	}
	h.redos = nil
}

func selectionOnly(batch []Operation) bool {
	for _, op := range batch {
		if _, ok := op.(SetSelection); !ok {
			return false
		}
	}
	return true
}

func (ed *Editor) CanUndo() bool {
	return len(ed.history.undos) > 0
}

func (ed *Editor) CanRedo() bool {
	return len(ed.history.redos) > 0
}

// Undo reverts the last batch of operations.
func (ed *Editor) Undo() bool {
	h := &ed.history
	if len(h.undos) == 0 {
		return false
	}
	batch := h.undos[len(h.undos)-1]
	h.undos = h.undos[:len(h.undos)-1]

	ed.withoutSaving(func() {
		ed.WithoutNormalizing(func() {
			for i := len(batch) - 1; i >= 0; i-- {
				ed.apply(batch[i].Inverse())
			}
		})
	})
	h.redos = append(h.redos, batch)
	return true
}

// Redo applies the last undone batch again.
func (ed *Editor) Redo() bool {
	h := &ed.history
	if len(h.redos) == 0 {
		return false
	}
	batch := h.redos[len(h.redos)-1]
	h.redos = h.redos[:len(h.redos)-1]

	ed.withoutSaving(func() {
		ed.WithoutNormalizing(func() {
			for _, op := range batch {
				ed.apply(op)
			}
		})
	})
	h.undos = append(h.undos, batch)
	return true
}

func (ed *Editor) withoutSaving(fn func()) {
	prev := ed.history.saving
	ed.history.saving = false
	defer func() { ed.history.saving = prev }()
	fn()
}
