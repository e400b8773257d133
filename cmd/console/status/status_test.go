package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationPublishGating(t *testing.T) {
	published := Notification.Evaluate(NotificationState(true))
	assert.Equal(t, []Action{ActionUnpublish}, published.Enabled)
	assert.ElementsMatch(t, []Action{ActionEdit, ActionDelete, ActionPublish}, published.Disabled)

	draft := Notification.Evaluate(NotificationState(false))
	assert.Equal(t, []Action{ActionEdit, ActionDelete, ActionPublish}, draft.Enabled)
	assert.Equal(t, []Action{ActionUnpublish}, draft.Disabled)
}

func TestTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		machine *Machine
		from    State
		action  Action
		want    State
		wantErr bool
	}{
		{name: "publish draft", machine: Notification, from: NotificationDraft, action: ActionPublish, want: NotificationPublished},
		{name: "unpublish", machine: Notification, from: NotificationPublished, action: ActionUnpublish, want: NotificationDraft},
		{name: "edit keeps draft", machine: Notification, from: NotificationDraft, action: ActionEdit, want: NotificationDraft},
		{name: "edit published", machine: Notification, from: NotificationPublished, action: ActionEdit, wantErr: true},
		{name: "take out", machine: LostItem, from: LostItemUsing, action: ActionTakeOut, want: LostItemTakenOut},
		{name: "send express", machine: LostItem, from: LostItemUsing, action: ActionSendExpress, want: LostItemSentForExpressDelivery},
		{name: "take out twice", machine: LostItem, from: LostItemTakenOut, action: ActionTakeOut, wantErr: true},
		{name: "discard taken out", machine: LostItem, from: LostItemTakenOut, action: ActionDiscard, wantErr: true},
		{name: "deliver", machine: Logistics, from: LogisticsPending, action: ActionDeliver, want: LogisticsInTransit},
		{name: "confirm arrival", machine: Logistics, from: LogisticsInTransit, action: ActionConfirmArrival, want: LogisticsArrived},
		{name: "confirm before deliver", machine: Logistics, from: LogisticsPending, action: ActionConfirmArrival, wantErr: true},
		{name: "discard in transit", machine: Logistics, from: LogisticsInTransit, action: ActionDiscard, wantErr: true},
		{name: "delete storing cabinet", machine: Cabinet, from: CabinetStoring, action: ActionDelete, wantErr: true},
		{name: "delete free cabinet", machine: Cabinet, from: CabinetFree, action: ActionDelete, want: CabinetFree},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := testCase.machine.Next(testCase.from, testCase.action)
			if testCase.wantErr {
				assert.True(t, errors.Is(err, ErrActionNotAllowed), "got %v", err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestTerminalStatesHaveNoActions(t *testing.T) {
	assert.Empty(t, LostItem.Actions(LostItemTakenOut))
	assert.Empty(t, LostItem.Actions(LostItemDiscarded))
	assert.Empty(t, Logistics.Actions(LogisticsArrived))
	assert.Empty(t, Logistics.Actions(LogisticsDiscarded))
}

func TestGoverns(t *testing.T) {
	assert.True(t, Cabinet.Governs(ActionDelete))
	assert.False(t, Cabinet.Governs(ActionPublish))
	assert.Equal(t, LogisticsPending, LogisticsState(""))
	assert.Equal(t, CabinetStoring, CabinetState(true))
}
