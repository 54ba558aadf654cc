package diag

// Reporter is the minimal contract for phases handing diagnostics upward.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores every reported diagnostic in a Bag.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Report(d Diagnostic) {
	r.Bag.Add(d)
}
