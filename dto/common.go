package dto

// PageQuery is the shared ?page=&limit= query
type PageQuery struct {
	Page  int `form:"page" validate:"min=0"`
	Limit int `form:"limit" validate:"min=0,max=100"`
}
