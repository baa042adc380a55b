package domain

// CatalogItem позиция меню. Создаётся только матчером, движок её не конструирует.
type CatalogItem struct {
	ArticleID        string  `json:"articleId"`
	ParentArticleID  string  `json:"parentArticleNumber,omitempty"` // у вариантов (размеров) общий код заказа
	CommodityGroupID string  `json:"commodityGroupId"`
	Name             string  `json:"articleName"`
	Price            float64 `json:"price"`
}

// OrderNumber код, под которым позиция уходит вендору.
func (c CatalogItem) OrderNumber() string {
	if c.ParentArticleID != "" {
		return c.ParentArticleID
	}
	return c.ArticleID
}
