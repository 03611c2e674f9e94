package memstore

import "context"

type txKey struct{}

type tx struct {
	undo []func()
}

// TxManager транзакции с журналом отката: при ошибке изменения отменяются в обратном порядке
type TxManager struct {
	s *Store
}

// Do выполняет fn в транзакции
func (m *TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

// DoReadOnly выполняет fn в транзакции (изменения все равно откатываются при ошибке)
func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, fn)
}

func (m *TxManager) run(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}

	t := &tx{}
	defer func() {
		if p := recover(); p != nil {
			m.rollback(t)
			panic(p)
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, t)); err != nil {
		m.rollback(t)
		return err
	}
	return nil
}

func (m *TxManager) rollback(t *tx) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
}

// record регистрирует отмену изменения, вызывается под s.mu
func record(ctx context.Context, undo func()) {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		t.undo = append(t.undo, undo)
	}
}
