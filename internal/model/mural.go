package model

import "time"

// MuralPost is one entry in the school's social feed.
type MuralPost struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_nome"`
	AvatarURL string    `json:"user_avatar,omitempty"`
	Content   string    `json:"conteudo"`
	ImageURL  string    `json:"imagem_url,omitempty"`
	Likes     int       `json:"likes"`
	LikedByMe bool      `json:"liked_by_me"`
	CreatedAt time.Time `json:"criado_em"`
}
