package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id", "user_id", "total_score").
		From("drafts").
		Where(Eq("show_id", "2024-12-31-msg"), Eq("scored", true)).
		OrderBy("total_score DESC").
		Limit(50).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	wantSQL := "SELECT id, user_id, total_score FROM drafts WHERE show_id = $1 AND scored = $2 ORDER BY total_score DESC LIMIT 50"
	if sql != wantSQL {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, wantSQL)
	}
	if !reflect.DeepEqual(args, []any{"2024-12-31-msg", true}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSelectBuilder_InCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("songs").
		Where(In("id", []any{"tweezer", "sand"})).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	if sql != "SELECT id FROM songs WHERE id IN ($1, $2)" {
		t.Fatalf("unexpected sql %s", sql)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestSelectBuilder_EmptyInShortCircuits(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").From("songs").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM songs WHERE 1=0" {
		t.Fatalf("unexpected sql %s", sql)
	}
	if len(args) != 0 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestInsertBuilder_SuffixPlaceholders(t *testing.T) {
	t.Parallel()

	sql, args, err := InsertInto("shows").
		Columns("id", "venue").
		Values("2024-12-31-msg", "Madison Square Garden").
		Suffix("ON CONFLICT (id) DO UPDATE SET venue = EXCLUDED.venue").
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	wantSQL := "INSERT INTO shows (id, venue) VALUES ($1, $2) ON CONFLICT (id) DO UPDATE SET venue = EXCLUDED.venue"
	if sql != wantSQL {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestInsertBuilder_RowArityMismatch(t *testing.T) {
	t.Parallel()

	_, _, err := InsertInto("shows").
		Columns("id", "venue").
		Values("only-one").
		ToSQL()
	if err == nil {
		t.Fatal("expected arity error")
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	sql, args, err := Update("shows").
		Set("is_completed", true).
		Set("updated_at", int64(1735689600)).
		Where(Eq("id", "2024-12-31-msg")).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}

	wantSQL := "UPDATE shows SET is_completed = $1, updated_at = $2 WHERE id = $3"
	if sql != wantSQL {
		t.Fatalf("sql mismatch:\n got %s\nwant %s", sql, wantSQL)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestDeleteBuilder_RequiresConditions(t *testing.T) {
	t.Parallel()

	if _, _, err := DeleteFrom("drafts").ToSQL(); err == nil {
		t.Fatal("expected missing-conditions error")
	}

	sql, args, err := DeleteFrom("drafts").Where(Eq("id", "d1")).ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "DELETE FROM drafts WHERE id = $1" {
		t.Fatalf("unexpected sql %s", sql)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestInsertModel(t *testing.T) {
	t.Parallel()

	type row struct {
		ID       string `db:"id"`
		Name     string `db:"name"`
		internal string `db:"skipped"`
		Ignored  string `db:"-"`
	}
	_ = row{internal: ""}

	sql, args, err := InsertModel("songs", row{ID: "tweezer", Name: "Tweezer", Ignored: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if sql != "INSERT INTO songs (id, name) VALUES ($1, $2)" {
		t.Fatalf("unexpected sql %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"tweezer", "Tweezer"}) {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestExprCondition(t *testing.T) {
	t.Parallel()

	sql, args, err := Select("id").
		From("drafts").
		Where(Eq("user_id", "u1"), Expr("created_at >= ?", int64(100))).
		ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	if sql != "SELECT id FROM drafts WHERE user_id = $1 AND created_at >= $2" {
		t.Fatalf("unexpected sql %s", sql)
	}
	if !reflect.DeepEqual(args, []any{"u1", int64(100)}) {
		t.Fatalf("unexpected args %v", args)
	}
}
