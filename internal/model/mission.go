package model

import "time"

// Mission statuses as stored by the server for an assigned mission.
const (
	MissionStatusPending   = "pendente"
	MissionStatusSubmitted = "aguardando_validacao"
	MissionStatusApproved  = "aprovada"
	MissionStatusRejected  = "rejeitada"
)

// Mission is a task defined by staff that students complete for XP and
// coin rewards.
type Mission struct {
	ID          int       `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	XP          int       `json:"pontos"`
	Coins       int       `json:"moedas"`
	Category    string    `json:"categoria"`
	CreatorID   int       `json:"criador_id"`
	Status      string    `json:"status,omitempty"`
	CreatedAt   time.Time `json:"criado_em"`
}

// AssignedMission links a mission to a student with its submission state.
type AssignedMission struct {
	ID          int        `json:"id"`
	MissionID   int        `json:"missao_id"`
	StudentID   int        `json:"aluno_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"data_atribuicao"`
	RespondedAt *time.Time `json:"data_resposta,omitempty"`
	Mission     *Mission   `json:"missao,omitempty"`
	StudentName string     `json:"aluno_nome,omitempty"`
}

// MissionCreate is the payload for POST /missoes/.
type MissionCreate struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	XP          int    `json:"pontos"`
	Coins       int    `json:"moedas"`
	Category    string `json:"categoria"`
	GradeID     *int   `json:"turma_id,omitempty"`
}
