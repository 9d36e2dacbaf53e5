package phonebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/models"
)

func loaded(contacts ...models.Contact) State {
	s, _ := Reduce(State{}, Loaded{Contacts: contacts})
	return s
}

var ann = models.Contact{ID: "1", Name: "Ann", Number: "123"}

func TestReduce_Loaded(t *testing.T) {
	s := loaded(ann)
	assert.True(t, s.Loaded)
	assert.Equal(t, 1, s.Contacts.Len())

	failed, effects := Reduce(State{}, Loaded{Err: unreachable()})
	assert.False(t, failed.Loaded)
	assert.Zero(t, failed.Contacts.Len())
	assert.Empty(t, effects)
}

func TestReduce_SubmitNewNameCreates(t *testing.T) {
	s, effects := Reduce(loaded(ann), SubmitRequested{Name: "Bob", Number: "555"})
	assert.Nil(t, s.Pending)
	require.Len(t, effects, 1)
	assert.Equal(t, CreateContact{Contact: models.Contact{Name: "Bob", Number: "555"}}, effects[0])
}

func TestReduce_SubmitExistingNameAsksFirst(t *testing.T) {
	s, effects := Reduce(loaded(ann), SubmitRequested{Name: "Ann", Number: "999"})
	assert.Empty(t, effects)
	require.NotNil(t, s.Pending)
	assert.Equal(t, IntentUpdate, s.Pending.Kind)
	assert.Equal(t, models.Contact{ID: "1", Name: "Ann", Number: "999"}, s.Pending.Contact)
	assert.Equal(t, ann, s.Pending.Previous)
}

func TestReduce_SubmitNameIsCaseSensitive(t *testing.T) {
	s, effects := Reduce(loaded(ann), SubmitRequested{Name: "ann", Number: "1"})
	assert.Nil(t, s.Pending)
	require.Len(t, effects, 1)
	assert.IsType(t, CreateContact{}, effects[0])
}

func TestReduce_DeclineLeavesEverything(t *testing.T) {
	start := loaded(ann)
	s, _ := Reduce(start, SubmitRequested{Name: "Ann", Number: "999"})
	s, effects := Reduce(s, ConfirmationResolved{Accepted: false})

	assert.Empty(t, effects)
	assert.Nil(t, s.Pending)
	assert.Equal(t, start.Contacts.All(), s.Contacts.All())
	assert.False(t, s.Notice.Visible())
}

func TestReduce_AcceptIssuesUpdate(t *testing.T) {
	s, _ := Reduce(loaded(ann), SubmitRequested{Name: "Ann", Number: "999"})
	s, effects := Reduce(s, ConfirmationResolved{Accepted: true})

	assert.Nil(t, s.Pending)
	require.Len(t, effects, 1)
	assert.Equal(t, UpdateContact{
		Contact:  models.Contact{ID: "1", Name: "Ann", Number: "999"},
		Previous: ann,
	}, effects[0])
}

func TestReduce_ResolveWithoutPending(t *testing.T) {
	s, effects := Reduce(loaded(ann), ConfirmationResolved{Accepted: true})
	assert.Empty(t, effects)
	assert.Nil(t, s.Pending)
}

func TestReduce_SubmitSucceeded(t *testing.T) {
	s := loaded(ann)
	s.Name, s.Number = "Ann", "999"

	next, effects := Reduce(s, SubmitSucceeded{Contact: models.Contact{ID: "1", Name: "Ann", Number: "999"}})
	assert.Equal(t, []models.Contact{{ID: "1", Name: "Ann", Number: "999"}}, next.Contacts.All())
	assert.Equal(t, MsgUpdated, next.Notice.Message)
	assert.Empty(t, next.Name)
	assert.Empty(t, next.Number)
	assert.Equal(t, []Effect{ScheduleExpiry{NoticeID: next.Notice.ID}}, effects)

	created, _ := Reduce(s, SubmitSucceeded{Created: true, Contact: models.Contact{ID: "42", Name: "Bob", Number: "555"}})
	assert.Equal(t, 2, created.Contacts.Len())
	assert.Equal(t, MsgAdded, created.Notice.Message)

	assert.Equal(t, 1, s.Contacts.Len(), "input state must not change")
}

func TestReduce_SubmitFailedValidation(t *testing.T) {
	s := loaded(ann)
	s.Name, s.Number = "Bob", ""

	next, effects := Reduce(s, SubmitFailed{Created: true, Err: invalid("number is required")})
	assert.Equal(t, "number is required", next.Notice.Message)
	assert.Equal(t, s.Contacts.All(), next.Contacts.All())
	assert.Equal(t, "Bob", next.Name, "form is kept on failure")
	assert.Len(t, effects, 1)
}

func TestReduce_UpdateNotFoundRemovesLocally(t *testing.T) {
	s := loaded(ann, models.Contact{ID: "2", Name: "Bob", Number: "555"})

	next, _ := Reduce(s, SubmitFailed{
		Contact:  ann.WithNumber("999"),
		Previous: ann,
		Err:      notFound("1"),
	})
	assert.Equal(t, "123 of Ann has been removed", next.Notice.Message)
	assert.Equal(t, []models.Contact{{ID: "2", Name: "Bob", Number: "555"}}, next.Contacts.All())
}

func TestReduce_NetworkFailureIsSilent(t *testing.T) {
	s := loaded(ann)

	next, effects := Reduce(s, SubmitFailed{Created: true, Err: unreachable()})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)

	next, effects = Reduce(s, DeleteFailed{Contact: ann, Err: unreachable()})
	assert.Empty(t, effects)
	assert.Equal(t, s, next)
}

func TestReduce_DeleteFlow(t *testing.T) {
	s, effects := Reduce(loaded(ann), DeleteRequested{ID: "1"})
	assert.Empty(t, effects)
	require.NotNil(t, s.Pending)
	assert.Equal(t, IntentDelete, s.Pending.Kind)

	s, effects = Reduce(s, ConfirmationResolved{Accepted: true})
	assert.Equal(t, []Effect{DeleteContact{Contact: ann}}, effects)

	s, _ = Reduce(s, DeleteSucceeded{Contact: ann})
	assert.Zero(t, s.Contacts.Len())
	assert.Equal(t, MsgDeleted, s.Notice.Message)
}

func TestReduce_DeleteUnknownIgnored(t *testing.T) {
	s, effects := Reduce(loaded(ann), DeleteRequested{ID: "404"})
	assert.Nil(t, s.Pending)
	assert.Empty(t, effects)
}

func TestReduce_DeleteNotFoundUsesSnapshot(t *testing.T) {
	s := loaded(ann.WithNumber("999"))

	next, _ := Reduce(s, DeleteFailed{Contact: ann.WithNumber("999"), Err: notFound("1")})
	assert.Equal(t, "999 of Ann has been removed", next.Notice.Message)
	assert.Zero(t, next.Contacts.Len())
}

func TestReduce_StaleExpiryKeepsNewerNotice(t *testing.T) {
	s := loaded(ann)
	s, _ = Reduce(s, SubmitFailed{Err: invalid("first")})
	firstID := s.Notice.ID
	s, _ = Reduce(s, SubmitFailed{Err: invalid("second")})
	require.NotEqual(t, firstID, s.Notice.ID)

	s, _ = Reduce(s, NotificationExpired{ID: firstID})
	assert.Equal(t, "second", s.Notice.Message)

	s, _ = Reduce(s, NotificationExpired{ID: s.Notice.ID})
	assert.False(t, s.Notice.Visible())
}

func TestReduce_SearchAndForm(t *testing.T) {
	s := loaded(ann, models.Contact{ID: "2", Name: "Bob", Number: "555"})

	s, _ = Reduce(s, SearchChanged{Query: "AN"})
	assert.Equal(t, []models.Contact{ann}, s.Visible())

	s, _ = Reduce(s, FormChanged{Name: "Al", Number: "7"})
	assert.Equal(t, "Al", s.Name)
	assert.Equal(t, "7", s.Number)
}

func TestConfirmation_Prompt(t *testing.T) {
	assert.Contains(t, Confirmation{Kind: IntentDelete, Contact: ann}.Prompt(), "delete Ann")
	assert.Contains(t, Confirmation{Kind: IntentUpdate, Contact: ann}.Prompt(), "Ann is already added")
}
