package dto

type CreateCommentRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateContentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CreateTweetRequest struct {
	VideoID string `json:"video_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateViewRequest struct {
	VideoID       string  `json:"video_id" binding:"required"`
	WatchDuration float64 `json:"watch_duration" binding:"required,gt=0"`
}

type PurchasePremiumRequest struct {
	StartingDate string  `json:"starting_date"`
	ClosingDate  string  `json:"closing_date"`
	ReferralCode string  `json:"referral_code"`
	AmountPaid   float64 `json:"amount_paid" binding:"required,gt=0"`
}

type PremiumStatusResponse struct {
	IsPremiumUser bool   `json:"is_premium_user"`
	ClosingDate   string `json:"closing_date,omitempty"`
}
