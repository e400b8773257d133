package services

import (
	"context"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/listing"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/status"
)

// 페이지 이름. config.console.page_sizes 의 키와 같다.
const (
	PageUsers           = "users"
	PageComments        = "comments"
	PageNotifications   = "notifications"
	PageCabinets        = "cabinets"
	PageCabinetSettings = "cabinet-settings"
	PageCategories      = "categories"
	PageOrders          = "orders"
	PageLostItems       = "lost-items"
	PageLogistics       = "logistics"
)

// operateType values accepted by the order operate endpoints.
const (
	operateTakeOut        = "TakeOut"
	operateDiscard        = "Discard"
	operateSendExpress    = "SendExpress"
	operateDeliver        = "Deliver"
	operateConfirmArrival = "ConfirmArrival"
)

func fetcher[T listing.Record](client *lockerclient.Client, ep lockerclient.ListEndpoint, sorts ...listing.SortParams) listing.Fetcher[T] {
	var sp listing.SortParams
	if len(sorts) > 0 {
		sp = sorts[0]
	}
	return func(ctx context.Context, q listing.Query) (listing.Result[T], error) {
		res, err := lockerclient.List[T](ctx, client, ep, q.Values(sp))
		if err != nil {
			return listing.Result[T]{}, err
		}
		return listing.Result[T]{Items: res.Items, Total: res.Total}, nil
	}
}

// -------------------- Users --------------------

type registerUserPayload struct {
	AccountName string `json:"accountName" validate:"required,max=64"`
	Password    string `json:"password" validate:"required,min=6"`
	NickName    string `json:"nickName" validate:"max=64"`
	Phone       string `json:"phone" validate:"omitempty,numeric,min=6,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
}

type updateUserPayload struct {
	AccountName string `json:"accountName"`
	NickName    string `json:"nickName" validate:"required,max=64"`
	RoleType    string `json:"roleType" validate:"omitempty,oneof=Ordinary VIP Admin"`
	Phone       string `json:"phone" validate:"omitempty,numeric,min=6,max=20"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address" validate:"max=255"`
}

type updateUserBody struct {
	UserID      int64  `json:"userId"`
	AccountName string `json:"accountName,omitempty"`
	NickName    string `json:"nickName"`
	Role        string `json:"role,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
}

func usersPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.User]{
		name:    PageUsers,
		title:   "Users",
		filters: []string{"nickName", "accountName"},
		fetch:   fetcher[lockerclient.User](client, lockerclient.UsersList),
		mutations: map[string]prepareFunc{
			string(mutation.Create): withPayload(lockerclient.PathRegister, func(_ mutation.Request, p registerUserPayload) (any, error) {
				return p, nil
			}),
			string(mutation.Update): withPayload(lockerclient.PathUserUpdate, func(req mutation.Request, p updateUserPayload) (any, error) {
				id, err := recordID(req)
				if err != nil {
					return nil, err
				}
				return updateUserBody{
					UserID:      id,
					AccountName: p.AccountName,
					NickName:    p.NickName,
					Role:        p.RoleType,
					Phone:       p.Phone,
					Email:       p.Email,
					Address:     p.Address,
				}, nil
			}),
			string(mutation.Delete): byID(lockerclient.PathUserDelete),
		},
	}, opts)
}

// -------------------- Comments --------------------

func commentsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Comment]{
		name:    PageComments,
		title:   "User comments",
		filters: []string{"id", "accountName"},
		fetch:   fetcher[lockerclient.Comment](client, lockerclient.CommentsList),
		mutations: map[string]prepareFunc{
			string(mutation.Delete): byID(lockerclient.PathCommentDelete),
		},
	}, opts)
}

// -------------------- Notifications --------------------

type notificationPayload struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"max=5000"`
}

type notificationBody struct {
	ID      int64  `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func notificationsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Notification]{
		name:    PageNotifications,
		title:   "Notifications",
		filters: []string{"title", "author"},
		fetch:   fetcher[lockerclient.Notification](client, lockerclient.NotificationsList),
		machine: status.Notification,
		stateOf: func(n lockerclient.Notification) status.State { return status.NotificationState(n.Publish) },
		mutations: map[string]prepareFunc{
			string(mutation.Create): withPayload(lockerclient.PathNotificationAdd, func(_ mutation.Request, p notificationPayload) (any, error) {
				return notificationBody{Title: p.Title, Content: p.Content}, nil
			}),
			string(mutation.Update): withPayload(lockerclient.PathNotificationUpdate, func(req mutation.Request, p notificationPayload) (any, error) {
				id, err := recordID(req)
				if err != nil {
					return nil, err
				}
				return notificationBody{ID: id, Title: p.Title, Content: p.Content}, nil
			}),
			string(mutation.Delete):        byID(lockerclient.PathNotificationDelete),
			string(status.ActionPublish):   byID(lockerclient.PathNotificationPublish),
			string(status.ActionUnpublish): byID(lockerclient.PathNotificationUnpublish),
		},
	}, opts)
}

// -------------------- Cabinets --------------------

type cabinetPayload struct {
	Num      string `json:"num" validate:"required,max=32"`
	Name     string `json:"name" validate:"required,max=64"`
	SizeType string `json:"sizeType" validate:"required,oneof=Small Medium Large"`
}

type cabinetBody struct {
	ID       int64  `json:"id,omitempty"`
	Num      string `json:"num"`
	Name     string `json:"name"`
	SizeType string `json:"sizeType"`
}

// 캐비닛 목록만 서버 정렬을 지원한다.
var cabinetSorts = listing.SortParams{"size": "sortBySize", "stored": "sortByStored"}

func cabinetsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Cabinet]{
		name:    PageCabinets,
		title:   "Cabinets",
		filters: []string{"name", "sizeType"},
		sorts:   cabinetSorts,
		fetch:   fetcher[lockerclient.Cabinet](client, lockerclient.CabinetsList, cabinetSorts),
		machine: status.Cabinet,
		stateOf: func(c lockerclient.Cabinet) status.State { return status.CabinetState(c.Stored) },
		mutations: map[string]prepareFunc{
			string(mutation.Create): withPayload(lockerclient.PathCabinetAdd, func(_ mutation.Request, p cabinetPayload) (any, error) {
				return cabinetBody{Num: p.Num, Name: p.Name, SizeType: p.SizeType}, nil
			}),
			string(mutation.Update): withPayload(lockerclient.PathCabinetUpdate, func(req mutation.Request, p cabinetPayload) (any, error) {
				id, err := recordID(req)
				if err != nil {
					return nil, err
				}
				return cabinetBody{ID: id, Num: p.Num, Name: p.Name, SizeType: p.SizeType}, nil
			}),
			string(mutation.Delete): byID(lockerclient.PathCabinetDelete),
		},
	}, opts)
}

// -------------------- Cabinet settings --------------------

type settingPayload struct {
	Price float64 `json:"price" validate:"gt=0"`
}

type settingBody struct {
	ID    int64   `json:"id"`
	Price float64 `json:"price"`
}

func cabinetSettingsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.CabinetSetting]{
		name:  PageCabinetSettings,
		title: "Cabinet pricing",
		fetch: fetcher[lockerclient.CabinetSetting](client, lockerclient.CabinetSettingList),
		mutations: map[string]prepareFunc{
			string(mutation.Update): withPayload(lockerclient.PathSettingUpdate, func(req mutation.Request, p settingPayload) (any, error) {
				id, err := recordID(req)
				if err != nil {
					return nil, err
				}
				return settingBody{ID: id, Price: p.Price}, nil
			}),
		},
	}, opts)
}

// -------------------- Categories --------------------

type categoryPayload struct {
	Name string `json:"name" validate:"required,max=64"`
}

type categoryBody struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

func categoriesPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Category]{
		name:    PageCategories,
		title:   "Storage categories",
		filters: []string{"name"},
		fetch:   fetcher[lockerclient.Category](client, lockerclient.CategoriesList),
		mutations: map[string]prepareFunc{
			string(mutation.Create): withPayload(lockerclient.PathCategoryAdd, func(_ mutation.Request, p categoryPayload) (any, error) {
				return categoryBody{Name: p.Name}, nil
			}),
			string(mutation.Update): withPayload(lockerclient.PathCategoryUpdate, func(req mutation.Request, p categoryPayload) (any, error) {
				id, err := recordID(req)
				if err != nil {
					return nil, err
				}
				return categoryBody{ID: id, Name: p.Name}, nil
			}),
			string(mutation.Delete): byID(lockerclient.PathCategoryDelete),
		},
	}, opts)
}

// -------------------- Orders --------------------

func ordersPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Order]{
		name:      PageOrders,
		title:     "Orders",
		filters:   []string{"username"},
		fetch:     fetcher[lockerclient.Order](client, lockerclient.OrdersList),
		mutations: map[string]prepareFunc{},
	}, opts)
}

// -------------------- Lost items --------------------

type lostItemPayload struct {
	SizeType string `json:"sizeType" validate:"required,oneof=Small Medium Large"`
	DateType string `json:"dateType" validate:"required,oneof=OneWeek OneMonth"`
	Name     string `json:"name" validate:"required,max=64"`
}

type lostItemBody struct {
	SizeType   string `json:"sizeType"`
	DateType   string `json:"dateType"`
	Name       string `json:"name"`
	IsLostItem bool   `json:"isLostItem"`
}

func lostItemsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.LostItem]{
		name:    PageLostItems,
		title:   "Lost items",
		filters: []string{"lostItemName", "sizeType"},
		fetch:   fetcher[lockerclient.LostItem](client, lockerclient.LostItemsList),
		machine: status.LostItem,
		stateOf: func(l lockerclient.LostItem) status.State { return status.State(l.StorageStatus) },
		mutations: map[string]prepareFunc{
			string(mutation.Create): withPayload(lockerclient.PathOrderAdd, func(_ mutation.Request, p lostItemPayload) (any, error) {
				return lostItemBody{SizeType: p.SizeType, DateType: p.DateType, Name: p.Name, IsLostItem: true}, nil
			}),
			string(status.ActionTakeOut):     operate(lockerclient.PathLostItemOperate, operateTakeOut),
			string(status.ActionDiscard):     operate(lockerclient.PathLostItemOperate, operateDiscard),
			string(status.ActionSendExpress): operate(lockerclient.PathLostItemOperate, operateSendExpress),
		},
	}, opts)
}

// -------------------- Logistics --------------------

func logisticsPage(client *lockerclient.Client, opts listing.Options) Page {
	return newPage(pageDef[lockerclient.Logistics]{
		name:    PageLogistics,
		title:   "Logistics",
		filters: []string{"cabinetNumber", "userAccount"},
		fetch:   fetcher[lockerclient.Logistics](client, lockerclient.LogisticsList),
		machine: status.Logistics,
		stateOf: func(l lockerclient.Logistics) status.State { return status.LogisticsState(l.Status) },
		mutations: map[string]prepareFunc{
			string(status.ActionDeliver):        operate(lockerclient.PathLogisticsOperate, operateDeliver),
			string(status.ActionConfirmArrival): operate(lockerclient.PathLogisticsOperate, operateConfirmArrival),
			string(status.ActionDiscard):        operate(lockerclient.PathLogisticsOperate, operateDiscard),
		},
	}, opts)
}
