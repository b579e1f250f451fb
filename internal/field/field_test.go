package field

import (
	"errors"
	"testing"
)

type memStore struct {
	entries  []string
	appended []string
	err      error
}

func (s *memStore) Entries() []string {
	return s.entries
}

func (s *memStore) Append(line string) error {
	if s.err != nil {
		return s.err
	}
	s.appended = append(s.appended, line)
	return nil
}

type drawRecord struct {
	text       string
	suggestion string
	cursor     int
}

type recorderSink struct {
	last  drawRecord
	draws int
}

func (r *recorderSink) DrawField(text, suggestion string, cursor, bound int) {
	r.last = drawRecord{text: text, suggestion: suggestion, cursor: cursor}
	r.draws++
}

func (r *recorderSink) SetCursorVisible(bool) {}

func newTestField(t *testing.T, bound int, hist []string, def string) (*Field, *memStore, *recorderSink) {
	t.Helper()
	store := &memStore{entries: hist}
	sink := &recorderSink{}
	f, err := New(Options{Default: def, Bound: bound, Store: store, Sink: sink})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f, store, sink
}

func press(t *testing.T, f *Field, keys ...Key) Status {
	t.Helper()
	st := f.Status()
	for _, k := range keys {
		var err error
		st, err = f.HandleKey(k)
		if err != nil {
			t.Fatalf("HandleKey(%v): %v", k.Code, err)
		}
	}
	return st
}

func typeText(t *testing.T, f *Field, s string) {
	t.Helper()
	for _, r := range s {
		press(t, f, Rune(r))
	}
}

func key(c KeyCode) Key {
	return Key{Code: c}
}

func TestNewRejectsBadOptions(t *testing.T) {
	if _, err := New(Options{Bound: 0, Store: &memStore{}}); err == nil {
		t.Fatalf("expected error for zero bound")
	}
	if _, err := New(Options{Bound: 10}); err == nil {
		t.Fatalf("expected error for missing store")
	}
}

func TestBoundInvariant(t *testing.T) {
	f, _, _ := newTestField(t, 3, nil, "")
	typeText(t, f, "abcdef")
	if f.Text() != "abc" {
		t.Fatalf("text = %q, want %q", f.Text(), "abc")
	}
	if f.Cursor() != 3 {
		t.Fatalf("cursor = %d, want 3", f.Cursor())
	}
}

func TestCommitAppendsToStore(t *testing.T) {
	f, store, _ := newTestField(t, 10, nil, "")
	typeText(t, f, "abc")
	st := press(t, f, key(KeyConfirm))
	if st != StatusCommitted {
		t.Fatalf("status = %v, want committed", st)
	}
	if len(store.appended) != 1 || store.appended[0] != "abc" {
		t.Fatalf("appended = %v, want [abc]", store.appended)
	}
}

func TestCommitEmptyUsesDefaultAndPersistsIt(t *testing.T) {
	f, store, _ := newTestField(t, 10, nil, "x")
	st := press(t, f, key(KeyConfirm))
	if st != StatusCommitted {
		t.Fatalf("status = %v, want committed", st)
	}
	if len(store.appended) != 1 || store.appended[0] != "x" {
		t.Fatalf("appended = %v, want [x]", store.appended)
	}
}

func TestAppendFailureAborts(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	f, err := New(Options{Bound: 10, Store: store})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := f.HandleKey(key(KeyConfirm)); err == nil {
		t.Fatalf("expected append error to propagate")
	}
	if f.Status() != StatusEditing {
		t.Fatalf("status = %v after failed commit, want editing", f.Status())
	}
}

func TestCancelWithoutSuggestion(t *testing.T) {
	f, store, _ := newTestField(t, 10, nil, "")
	st := press(t, f, key(KeyCancel))
	if st != StatusCancelled {
		t.Fatalf("status = %v, want cancelled", st)
	}
	if len(store.appended) != 0 {
		t.Fatalf("cancel appended %v", store.appended)
	}
}

func TestCancelClearsSuggestionFirst(t *testing.T) {
	f, _, sink := newTestField(t, 10, []string{"foobar"}, "")
	typeText(t, f, "fo")
	if sink.last.suggestion != "obar" {
		t.Fatalf("suggestion = %q, want %q", sink.last.suggestion, "obar")
	}
	st := press(t, f, key(KeyCancel))
	if st != StatusEditing {
		t.Fatalf("status = %v after first cancel, want editing", st)
	}
	if sink.last.suggestion != "" {
		t.Fatalf("suggestion = %q after cancel, want empty", sink.last.suggestion)
	}
	if f.Text() != "fo" {
		t.Fatalf("text = %q after cancel, want %q", f.Text(), "fo")
	}
	st = press(t, f, key(KeyCancel))
	if st != StatusCancelled {
		t.Fatalf("status = %v after second cancel, want cancelled", st)
	}
}

func TestDraftPreservedAcrossBrowse(t *testing.T) {
	f, _, _ := newTestField(t, 10, []string{"one", "two"}, "")
	typeText(t, f, "dr")
	press(t, f, key(KeyHistoryUp), key(KeyHistoryUp))
	if f.Text() != "one" {
		t.Fatalf("text = %q while browsing, want %q", f.Text(), "one")
	}
	press(t, f, key(KeyHistoryDown), key(KeyHistoryDown))
	if f.Text() != "dr" {
		t.Fatalf("text = %q after returning to live, want %q", f.Text(), "dr")
	}
	if f.Cursor() != 2 {
		t.Fatalf("cursor = %d, want 2", f.Cursor())
	}
}

func TestEditWhileBrowsingPullsEntryToLive(t *testing.T) {
	f, _, _ := newTestField(t, 5, []string{"ab"}, "")
	press(t, f, key(KeyHistoryUp))
	if f.Text() != "ab" || f.Cursor() != 2 {
		t.Fatalf("text = %q cursor = %d, want ab/2", f.Text(), f.Cursor())
	}
	press(t, f, Rune('c'))
	if f.Text() != "abc" {
		t.Fatalf("text = %q, want %q", f.Text(), "abc")
	}
	if f.browsing() {
		t.Fatalf("still browsing after edit")
	}
	// The committed line is the edited history entry, not the empty draft.
	press(t, f, key(KeyConfirm))
	if f.result != "abc" {
		t.Fatalf("result = %q, want %q", f.result, "abc")
	}
}

func TestBackspaceWhileBrowsingEditsEntry(t *testing.T) {
	f, _, _ := newTestField(t, 10, []string{"abc"}, "")
	typeText(t, f, "live")
	press(t, f, key(KeyHistoryUp), key(KeyBackspace))
	if f.Text() != "ab" {
		t.Fatalf("text = %q, want %q", f.Text(), "ab")
	}
	if f.browsing() {
		t.Fatalf("still browsing after backspace")
	}
	// The draft is gone for good once the entry was edited.
	press(t, f, key(KeyHistoryDown))
	if f.Text() != "ab" {
		t.Fatalf("text = %q after down, want %q", f.Text(), "ab")
	}
}

func TestBrowseSkipsEntriesWiderThanBound(t *testing.T) {
	f, _, _ := newTestField(t, 3, []string{"abc", "toolong", "ab"}, "")
	press(t, f, key(KeyHistoryUp))
	if f.Text() != "ab" {
		t.Fatalf("text = %q, want %q", f.Text(), "ab")
	}
	press(t, f, key(KeyHistoryUp))
	if f.Text() != "abc" {
		t.Fatalf("text = %q after skipping wide entry, want %q", f.Text(), "abc")
	}
	press(t, f, key(KeyHistoryDown))
	if f.Text() != "ab" {
		t.Fatalf("text = %q going newer, want %q", f.Text(), "ab")
	}
}

func TestBrowseNoReachableEntryIsNoop(t *testing.T) {
	f, _, _ := newTestField(t, 3, []string{"toolong"}, "")
	typeText(t, f, "x")
	press(t, f, key(KeyHistoryUp))
	if f.Text() != "x" {
		t.Fatalf("text = %q, want %q", f.Text(), "x")
	}
	if f.browsing() {
		t.Fatalf("browsing with no reachable entry")
	}
}

func TestConfirmMidBrowseReturnsToLive(t *testing.T) {
	f, store, _ := newTestField(t, 10, []string{"one"}, "")
	typeText(t, f, "x")
	press(t, f, key(KeyHistoryUp))
	st := press(t, f, key(KeyConfirm))
	if st != StatusEditing {
		t.Fatalf("status = %v after mid-browse confirm, want editing", st)
	}
	if f.Text() != "x" {
		t.Fatalf("text = %q, want draft %q", f.Text(), "x")
	}
	if len(store.appended) != 0 {
		t.Fatalf("mid-browse confirm appended %v", store.appended)
	}
	st = press(t, f, key(KeyConfirm))
	if st != StatusCommitted || f.result != "x" {
		t.Fatalf("status = %v result = %q, want committed/x", st, f.result)
	}
}

func TestCancelMidBrowseReturnsToLive(t *testing.T) {
	f, _, _ := newTestField(t, 10, []string{"zzz"}, "")
	typeText(t, f, "x")
	press(t, f, key(KeyHistoryUp))
	st := press(t, f, key(KeyCancel))
	if st != StatusEditing {
		t.Fatalf("status = %v, want editing", st)
	}
	if f.Text() != "x" {
		t.Fatalf("text = %q, want %q", f.Text(), "x")
	}
	st = press(t, f, key(KeyCancel))
	if st != StatusCancelled {
		t.Fatalf("status = %v, want cancelled", st)
	}
}

func TestSuggestionOffersMostRecentAndAcceptsOnRight(t *testing.T) {
	f, _, sink := newTestField(t, 10, []string{"foo", "foobar"}, "")
	typeText(t, f, "fo")
	if sink.last.suggestion != "obar" {
		t.Fatalf("suggestion = %q, want %q", sink.last.suggestion, "obar")
	}
	press(t, f, key(KeyRight))
	if f.Text() != "foobar" {
		t.Fatalf("text = %q, want %q", f.Text(), "foobar")
	}
	if f.Cursor() != 6 {
		t.Fatalf("cursor = %d, want 6", f.Cursor())
	}
	if sink.last.suggestion != "" {
		t.Fatalf("suggestion = %q after accept, want empty", sink.last.suggestion)
	}
}

func TestCycleSelectsAlternativeThenAccept(t *testing.T) {
	f, _, _ := newTestField(t, 10, []string{"foo", "foobar"}, "")
	typeText(t, f, "fo")
	press(t, f, key(KeyCompleteNext), key(KeyCompleteNext))
	press(t, f, key(KeyRight))
	if f.Text() != "foo" {
		t.Fatalf("text = %q, want %q", f.Text(), "foo")
	}
}

func TestCyclePrevFromNoneSelectsLast(t *testing.T) {
	f, _, sink := newTestField(t, 10, []string{"foo", "foobar"}, "")
	typeText(t, f, "fo")
	press(t, f, key(KeyCompletePrev))
	if sink.last.suggestion != "o" {
		t.Fatalf("suggestion = %q, want %q", sink.last.suggestion, "o")
	}
}

func TestRightMidTextMovesCursor(t *testing.T) {
	f, _, _ := newTestField(t, 10, []string{"foobar"}, "")
	typeText(t, f, "fo")
	press(t, f, key(KeyHome), key(KeyRight))
	if f.Text() != "fo" {
		t.Fatalf("text = %q, want unchanged %q", f.Text(), "fo")
	}
	if f.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", f.Cursor())
	}
}

func TestAcceptedSuggestionCommits(t *testing.T) {
	f, store, _ := newTestField(t, 10, []string{"foobar"}, "")
	typeText(t, f, "fo")
	press(t, f, key(KeyRight), key(KeyConfirm))
	if len(store.appended) != 1 || store.appended[0] != "foobar" {
		t.Fatalf("appended = %v, want [foobar]", store.appended)
	}
}

func TestHomeEndKeys(t *testing.T) {
	f, _, _ := newTestField(t, 10, nil, "")
	typeText(t, f, "abc")
	press(t, f, key(KeyHome))
	if f.Cursor() != 0 {
		t.Fatalf("cursor after home = %d, want 0", f.Cursor())
	}
	press(t, f, key(KeyEnd))
	if f.Cursor() != 3 {
		t.Fatalf("cursor after end = %d, want 3", f.Cursor())
	}
}

func TestDeleteAtCursor(t *testing.T) {
	f, _, _ := newTestField(t, 10, nil, "")
	typeText(t, f, "abc")
	press(t, f, key(KeyHome), key(KeyDelete))
	if f.Text() != "bc" {
		t.Fatalf("text = %q, want %q", f.Text(), "bc")
	}
}

func TestRunCommits(t *testing.T) {
	f, store, _ := newTestField(t, 10, nil, "")
	src := &scriptedKeys{keys: []Key{Rune('h'), Rune('i'), key(KeyConfirm)}}
	res, err := f.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Committed || res.Text != "hi" {
		t.Fatalf("result = %+v, want committed hi", res)
	}
	if len(store.appended) != 1 || store.appended[0] != "hi" {
		t.Fatalf("appended = %v, want [hi]", store.appended)
	}
}

func TestRunCancelled(t *testing.T) {
	f, _, _ := newTestField(t, 10, nil, "fallback")
	src := &scriptedKeys{keys: []Key{Rune('a'), key(KeyCancel)}}
	res, err := f.Run(src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Committed || res.Text != "" {
		t.Fatalf("result = %+v, want uncommitted empty", res)
	}
}

func TestRunPropagatesKeySourceError(t *testing.T) {
	f, _, _ := newTestField(t, 10, nil, "")
	src := &scriptedKeys{err: errors.New("terminal gone")}
	if _, err := f.Run(src); err == nil {
		t.Fatalf("expected key source error")
	}
}

type scriptedKeys struct {
	keys []Key
	err  error
}

func (s *scriptedKeys) Next() (Key, error) {
	if len(s.keys) == 0 {
		if s.err == nil {
			s.err = errors.New("script exhausted")
		}
		return Key{}, s.err
	}
	k := s.keys[0]
	s.keys = s.keys[1:]
	return k, nil
}
