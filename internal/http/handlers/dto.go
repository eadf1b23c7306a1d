package handlers

type createParcelRequest struct {
	Title        string `json:"title"`
	CreatedBy    string `json:"created_by"`
	SenderCenter string `json:"sender_center,omitempty"`
}

type setParcelStatusRequest struct {
	Status string `json:"status"`
}

type assignRiderRequest struct {
	RiderID    string `json:"rider_id"`
	RiderName  string `json:"rider_name"`
	RiderEmail string `json:"rider_email"`
}

type registerRiderRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	District string `json:"district"`
}

type setRiderStatusRequest struct {
	Status string `json:"status"`
	Email  string `json:"email,omitempty"`
}

type recordPaymentRequest struct {
	ParcelID      string `json:"parcelId"`
	Email         string `json:"email"`
	Amount        int64  `json:"amount"`
	TransactionID string `json:"transactionId"`
	Method        string `json:"paymentMethod"`
}

type createIntentRequest struct {
	AmountInCents int64 `json:"amountInCents"`
}

type ensureUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type setAdminRequest struct {
	Admin bool `json:"admin"`
}

type addTrackingRequest struct {
	TrackingID string `json:"trackingId"`
	Status     string `json:"status"`
	Location   string `json:"location,omitempty"`
	Note       string `json:"note,omitempty"`
}
