package domain

// OrderLine одна позиция одного участника
type OrderLine struct {
	SenderID   int64
	SenderName string
	Item       CatalogItem
}

// SubmissionRequest снимок заказа на момент /submit. После передачи в пайплайн не меняется.
type SubmissionRequest struct {
	ID     string
	ChatID int64
	Lines  []OrderLine
}

// FulfillmentRecord минимальная запись, которую получает внешний исполнитель заказа.
type FulfillmentRecord struct {
	ArticleID        string `json:"articleId"`
	ArticleNumber    string `json:"articleNumber"`
	CommodityGroupID string `json:"commodityGroupId"`
}

func NewFulfillmentRecord(line OrderLine) FulfillmentRecord {
	return FulfillmentRecord{
		ArticleID:        line.Item.ArticleID,
		ArticleNumber:    line.Item.OrderNumber(),
		CommodityGroupID: line.Item.CommodityGroupID,
	}
}
