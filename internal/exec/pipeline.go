package exec

import (
	"github.com/siso-ai/siso-database/internal/engine"
	"github.com/siso-ai/siso-database/internal/statement"
	"github.com/siso-ai/siso-database/internal/table"
)

// NewPipeline builds a dispatcher with the full stage chain registered
// against the given store: the parser stages first, then the statement
// executors, then the relational operators, with the result formatter
// last.
//
// Registration order is the priority order. The formatter applies to
// every row-set, so it must come after every operator - it only ever
// transforms a row-set no earlier stage wants.
func NewPipeline(store *table.Store, opts ...engine.Option) (*engine.Dispatcher, error) {
	d := engine.New(opts...)

	stages := []engine.Stage{
		&statement.CreateParser{},
		&statement.DropParser{},
		&statement.InsertParser{},
		&statement.SelectParser{},
		&statement.UpdateParser{},
		&statement.DeleteParser{},
		&CreateExec{Store: store},
		&DropExec{Store: store},
		&InsertExec{Store: store},
		&UpdateExec{Store: store},
		&DeleteExec{Store: store},
		&Scan{Store: store},
		&Filter{},
		&Project{},
		&Order{},
		&Limit{},
		&Distinct{},
		&Format{},
	}
	for _, s := range stages {
		if err := d.Register(s); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Execute runs one statement through a fresh pipeline over the store
// and returns the result text. Errors from the run itself (budget
// exhaustion, stage failure) come back as the error; statement-level
// failures come back in the result text with the error prefix.
func Execute(store *table.Store, text string, opts ...engine.Option) (string, error) {
	d, err := NewPipeline(store, opts...)
	if err != nil {
		return "", err
	}
	d.Submit(engine.NewUnit(statement.Raw{Text: text}))
	res, err := d.Run()
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
