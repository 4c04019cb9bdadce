package mysql

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"athletes/internal/storage"
)

func TestInsertStatement(t *testing.T) {
	t.Parallel()

	stmt, args, err := insertStatement("bios.athletes", []string{"athlete_id", "noc"}, [][]any{
		{"1", "FRA"},
		{"2", nil},
	})
	if err != nil {
		t.Fatalf("insertStatement: %v", err)
	}
	want := "INSERT INTO `bios`.`athletes` (`athlete_id`, `noc`) VALUES (?, ?), (?, ?)"
	if stmt != want {
		t.Fatalf("stmt = %q\nwant %q", stmt, want)
	}
	if !reflect.DeepEqual(args, []any{"1", "FRA", "2", nil}) {
		t.Fatalf("args = %#v", args)
	}

	if _, _, err := insertStatement("t", []string{"a", "b"}, [][]any{{"x"}}); err == nil {
		t.Fatalf("expected row width error")
	}
}

func TestChunkRows(t *testing.T) {
	t.Parallel()

	rows := make([][]any, 7)
	chunks := chunkRows(rows, 3)
	var sizes []int
	for _, c := range chunks {
		sizes = append(sizes, len(c))
	}
	if !reflect.DeepEqual(sizes, []int{3, 3, 1}) {
		t.Fatalf("chunk sizes = %v, want [3 3 1]", sizes)
	}
}

func TestAdapterRegistration(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var got Config
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		got = cfg
		return &Repository{}, func() {}, nil
	}
	repo, err := storage.New(context.Background(), storage.Config{Kind: "mysql", DSN: "u:p@tcp(db:3306)/bios", Table: "athletes"})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	defer repo.Close()
	if got.Table != "athletes" {
		t.Fatalf("config not forwarded: %+v", got)
	}
}

func TestNewRepository_BadDSN(t *testing.T) {
	t.Parallel()
	_, _, err := NewRepository(context.Background(), Config{DSN: "not a dsn"})
	if err == nil || !strings.Contains(err.Error(), "mysql dsn") {
		t.Fatalf("err = %v, want mysql dsn error", err)
	}
}
