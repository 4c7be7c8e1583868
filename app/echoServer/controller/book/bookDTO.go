package book

type UpsertBookReq struct {
	Title       string `json:"title" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Category    string `json:"category"`
	ISBN        string `json:"isbn"`
	CoverURL    string `json:"cover_url"`
	TotalCopies int64  `json:"total_copies" validate:"gte=0"`
}
