package status

// Notification
const (
	NotificationDraft     State = "Draft"
	NotificationPublished State = "Published"
)

// 발행된 공지는 수정/삭제 불가.
var Notification = NewMachine("notification",
	Rule{From: NotificationDraft, Action: ActionEdit},
	Rule{From: NotificationDraft, Action: ActionDelete},
	Rule{From: NotificationDraft, Action: ActionPublish, To: NotificationPublished},
	Rule{From: NotificationPublished, Action: ActionUnpublish, To: NotificationDraft},
)

func NotificationState(published bool) State {
	if published {
		return NotificationPublished
	}
	return NotificationDraft
}

// Lost-item storage order
const (
	LostItemUsing                  State = "Using"
	LostItemTakenOut               State = "TakenOut"
	LostItemDiscarded              State = "Discarded"
	LostItemSentForExpressDelivery State = "SentForExpressDelivery"
)

var LostItem = NewMachine("lost-item",
	Rule{From: LostItemUsing, Action: ActionTakeOut, To: LostItemTakenOut},
	Rule{From: LostItemUsing, Action: ActionDiscard, To: LostItemDiscarded},
	Rule{From: LostItemUsing, Action: ActionSendExpress, To: LostItemSentForExpressDelivery},
)

// Logistics order
const (
	LogisticsPending   State = "Pending"
	LogisticsInTransit State = "InTransit"
	LogisticsArrived   State = "Arrived"
	LogisticsDiscarded State = "Discarded"
)

var Logistics = NewMachine("logistics",
	Rule{From: LogisticsPending, Action: ActionDeliver, To: LogisticsInTransit},
	Rule{From: LogisticsPending, Action: ActionDiscard, To: LogisticsDiscarded},
	Rule{From: LogisticsInTransit, Action: ActionConfirmArrival, To: LogisticsArrived},
)

// LogisticsState maps the backend status; rows without one are pending.
func LogisticsState(s string) State {
	if s == "" {
		return LogisticsPending
	}
	return State(s)
}

// Cabinet
const (
	CabinetFree    State = "Free"
	CabinetStoring State = "Storing"
)

// 물건이 보관 중인 캐비닛은 수정/삭제 불가.
var Cabinet = NewMachine("cabinet",
	Rule{From: CabinetFree, Action: ActionEdit},
	Rule{From: CabinetFree, Action: ActionDelete},
)

func CabinetState(stored bool) State {
	if stored {
		return CabinetStoring
	}
	return CabinetFree
}
