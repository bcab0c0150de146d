package dto

type CreateChatUserRequest struct {
	DisplayName string `json:"displayName" validate:"required,max=100"`
}

type ChatIdentity struct {
	ID          string `json:"id"`
	Token       string `json:"token"`
	ExpiresOn   string `json:"expiresOn"`
	DisplayName string `json:"displayName"`
	Simulated   bool   `json:"simulated"`
}

type ChatParticipant struct {
	ID          string `json:"id" validate:"required"`
	DisplayName string `json:"displayName"`
}

type CreateThreadRequest struct {
	Topic        string            `json:"topic" validate:"required,max=200"`
	Participants []ChatParticipant `json:"participants" validate:"dive"`
}

type ChatThreadResponse struct {
	ThreadID  string `json:"threadId"`
	Topic     string `json:"topic"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	Simulated bool   `json:"simulated"`
}

type SendMessageRequest struct {
	SenderID   string `json:"senderId" validate:"required"`
	SenderName string `json:"senderName"`
	Content    string `json:"content" validate:"required,max=4000"`
}

type ChatMessageResponse struct {
	ID         string `json:"id"`
	ThreadID   string `json:"threadId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Content    string `json:"content"`
	IsBot      bool   `json:"isBot"`
	CreatedAt  string `json:"createdAt"`
}

type BotProcessRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type BotReplyResponse struct {
	Intent      string               `json:"intent"`
	Response    string               `json:"response"`
	Suggestions []string             `json:"suggestions"`
	Source      string               `json:"source"`
	Message     *ChatMessageResponse `json:"message,omitempty"`
}
