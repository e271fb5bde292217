package dto

// Limites de paginação das listagens
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ErrorResponse é o envelope de erro de toda a API. Details traz o campo
// rejeitado numa validação ou a causa de um erro interno.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// MessageResponse confirma operações que não devolvem recurso (troca de senha,
// papéis, remoção de funcionário)
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination guarda a página a partir de 1 e o tamanho já limitado
type Pagination struct {
	Page     int
	PageSize int
}

// Offset calcula o deslocamento da página atual
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ClientPage devolve a página no formato do frontend, a partir de 0
func (p Pagination) ClientPage() int {
	return p.Page - 1
}

// PageFromClient converte a página do frontend (a partir de 0) e limita o tamanho
func PageFromClient(page, pageSize int) Pagination {
	return GetPagination(page+1, pageSize)
}

// GetPagination normaliza página e tamanho a partir de 1
func GetPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}

	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

// NewErrorResponse cria uma nova resposta de erro
func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Details: details}
}

// NewMessageResponse cria a confirmação de uma operação
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// totalPages arredonda para cima; uma listagem vazia ainda tem uma página
func totalPages(totalCount, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	if totalCount == 0 {
		return 1
	}
	return (totalCount + pageSize - 1) / pageSize
}
