package lockerclient

import "strconv"

// 백엔드 응답 모델. 필드명은 락커 API JSON 그대로 따른다.

type User struct {
	ID           int64  `json:"id"`
	AccountName  string `json:"accountName"`
	NickName     string `json:"nickName"`
	RoleType     string `json:"roleType"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
	Point        int64  `json:"point"`
	StorageCount int64  `json:"storageCount"`
	IsStored     bool   `json:"isStored"`
}

func (u User) RecordKey() string { return strconv.FormatInt(u.ID, 10) }

type Comment struct {
	ID          int64  `json:"id"`
	AccountName string `json:"accountName"`
	Comment     string `json:"comment"`
	CommentDate string `json:"commentDate"`
	Phone       string `json:"phone,omitempty"`
}

func (c Comment) RecordKey() string { return strconv.FormatInt(c.ID, 10) }

type Notification struct {
	ID         int64  `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Author     string `json:"author"`
	CreateTime string `json:"createTime"`
	Publish    bool   `json:"publish"`
}

func (n Notification) RecordKey() string { return strconv.FormatInt(n.ID, 10) }

type Cabinet struct {
	ID       int64  `json:"id"`
	Num      string `json:"num"`
	Name     string `json:"name"`
	SizeType string `json:"sizeType"`
	Stored   bool   `json:"stored"`
}

func (c Cabinet) RecordKey() string { return strconv.FormatInt(c.ID, 10) }

type CabinetSetting struct {
	ID       int64   `json:"id"`
	Size     string  `json:"size"`
	DateType string  `json:"dateType"`
	Price    float64 `json:"price"`
}

func (s CabinetSetting) RecordKey() string { return strconv.FormatInt(s.ID, 10) }

type Category struct {
	ID           int64  `json:"id"`
	CategoryName string `json:"categoryName"`
	CreatedDate  string `json:"createdDate"`
}

func (c Category) RecordKey() string { return strconv.FormatInt(c.ID, 10) }

type Order struct {
	ID             int64   `json:"id"`
	Num            string  `json:"num"`
	Username       string  `json:"username"`
	StorageDate    string  `json:"storageDate"`
	StoredDuration string  `json:"storedDuration"`
	VoucherNumber  string  `json:"voucherNumber"`
	StoragePrice   float64 `json:"storagePrice"`
	IsPayment      bool    `json:"isPayment"`
}

func (o Order) RecordKey() string { return strconv.FormatInt(o.ID, 10) }

// LostItem은 유실물 보관 주문이다. StorageStatus: Using, TakenOut, Discarded, SentForExpressDelivery.
type LostItem struct {
	ID            int64  `json:"id"`
	CabinetNumber string `json:"cabinetNumber"`
	SizeType      string `json:"sizeType"`
	Name          string `json:"name"`
	StorageTime   string `json:"storageTime"`
	EndTime       string `json:"endTime"`
	StorageName   string `json:"storageName"`
	StorageStatus string `json:"storageStatus"`
}

func (l LostItem) RecordKey() string { return strconv.FormatInt(l.ID, 10) }

// Logistics는 택배 발송 주문이다. Status가 비어 있으면 Pending으로 본다.
type Logistics struct {
	ID                   int64  `json:"id"`
	StorageCabinetNumber string `json:"storageCabinetNumber"`
	StorageUserAccount   string `json:"storageUserAccount"`
	Recipient            string `json:"recipient"`
	Phone                string `json:"phone"`
	DeliveryAddress      string `json:"deliveryAddress"`
	Status               string `json:"status,omitempty"`
}

func (l Logistics) RecordKey() string { return strconv.FormatInt(l.ID, 10) }

type UsagePoint struct {
	Date       string `json:"date"`
	UsageCount int64  `json:"usageCount"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
