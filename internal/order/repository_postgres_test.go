package order

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestCreate_DuplicateID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("INSERT INTO orders").WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(Order{ID: "abc", Status: StatusAwaitingPayment})
	if err != ErrDuplicateID {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindByReferenceSuffix(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "cliente", "itens", "subtotal", "frete", "desconto", "total", "status", "tracking_code", "created_at"}).
		AddRow("pedido-9f3b", []byte(`{"nome":"Ana"}`), []byte(`[{"nome":"Camiseta","preco":79.9,"quantidade":1}]`),
			79.9, 15.0, 0.0, 94.9, StatusAwaitingPayment, nil, "2025-06-01T10:00:00Z")
	mock.ExpectQuery("FROM orders").WithArgs("9F3B").WillReturnRows(rows)

	ord, err := repo.FindByReferenceSuffix("9F3B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ord.ID != "pedido-9f3b" {
		t.Errorf("unexpected order id %q", ord.ID)
	}
	if ord.Customer.Nome != "Ana" {
		t.Errorf("cliente not unmarshalled: %+v", ord.Customer)
	}
	if len(ord.Items) != 1 || ord.Items[0].Nome != "Camiseta" {
		t.Errorf("itens not unmarshalled: %+v", ord.Items)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFindByReferenceSuffix_MetacharactersAreLiteral(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	// a "%" typed on the tracking page is an ordinary character, not a
	// wildcard; the suffix must be compared literally
	mock.ExpectQuery(regexp.QuoteMeta(`right(lower(id), length($1)) = lower($1)`)).
		WithArgs("%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente", "itens", "subtotal", "frete", "desconto", "total", "status", "tracking_code", "created_at"}))

	if _, err := repo.FindByReferenceSuffix("%"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTransitionStatus_Transitions(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("abc", StatusAwaitingPayment, StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.TransitionStatus("abc", StatusAwaitingPayment, StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected transition to be reported")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTransitionStatus_AlreadyDone(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("abc", StatusAwaitingPayment, StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("abc").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := repo.TransitionStatus("abc", StatusAwaitingPayment, StatusApproved)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected no transition for an already-approved order")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestTransitionStatus_UnknownOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("ghost", StatusAwaitingPayment, StatusApproved).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err = repo.TransitionStatus("ghost", StatusAwaitingPayment, StatusApproved)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
