package postgres_adapter

import (
	"fmt"
	"listings-service/internal/core/domain"
	"strings"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newListingQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId: 1,
		// Базовый предикат: в общей выдаче участвуют только доступные объявления.
		conditions: []string{"l.is_available = true"},
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddFloatFilter добавляет включающие границы диапазона, если они заданы
func (qb *queryBuilder) AddFloatFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

// AddIntFilter добавляет точное совпадение по числовому полю.
// Проверка на nil, а не на ноль: bedrooms=0 - настоящий фильтр.
func (qb *queryBuilder) AddIntFilter(fieldName string, value *int) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// AddBoolFilter добавляет точное совпадение по булеву полю, если оно задано
func (qb *queryBuilder) AddBoolFilter(fieldName string, value *bool) {
	if value != nil {
		qb.addCondition("%s = $%d", fieldName, *value)
	}
}

// build создает финальную часть WHERE
func (qb *queryBuilder) build() (string, []interface{}) {
	whereClause := ""
	if len(qb.conditions) > 0 {
		whereClause = "WHERE " + strings.Join(qb.conditions, " AND ")
	}
	return whereClause, qb.args
}

// Белый список полей сортировки. Все остальное сводится к created_at.
var orderableColumns = map[string]string{
	"created_at": "l.created_at",
	"price":      "l.price",
	"rating":     "l.rating",
	"area":       "l.area",
}

// applyListingFilters - главный метод, который разбирает фильтры и строит запрос
func applyListingFilters(filters domain.ListingFilters) (string, string, []interface{}) {
	qb := newListingQueryBuilder()

	// Точные совпадения
	if filters.Category != "" {
		qb.addCondition("%s = $%d", "l.category", filters.Category)
	}
	if filters.PriceType != "" {
		qb.addCondition("%s = $%d", "l.price_type", filters.PriceType)
	}
	if filters.AgentID != nil {
		qb.addCondition("%s = $%d", "l.agent_id", *filters.AgentID)
	}

	qb.AddIntFilter("l.bedrooms", filters.Bedrooms)
	qb.AddIntFilter("l.bathrooms", filters.Bathrooms)

	qb.AddBoolFilter("l.is_featured", filters.IsFeatured)
	qb.AddBoolFilter("l.is_verified", filters.IsVerified)

	qb.AddFloatFilter("l.price", filters.MinPrice, filters.MaxPrice)
	qb.AddFloatFilter("l.area", filters.MinArea, filters.MaxArea)

	// Текстовый поиск: подстрока без учета регистра по заголовку,
	// местоположению и описанию, условия соединяются через OR.
	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		condition := fmt.Sprintf(
			"(l.title ILIKE $%d OR l.location ILIKE $%d OR l.description ILIKE $%d)",
			qb.argId, qb.argId+1, qb.argId+2,
		)
		qb.conditions = append(qb.conditions, condition)
		qb.args = append(qb.args, pattern, pattern, pattern)
		qb.argId += 3
	}

	whereClause, args := qb.build()
	return whereClause, buildOrderClause(filters), args
}

// buildOrderClause строит ORDER BY по белому списку полей.
// По умолчанию от новых к старым.
func buildOrderClause(filters domain.ListingFilters) string {
	column, ok := orderableColumns[filters.OrderBy]
	if !ok {
		column = orderableColumns["created_at"]
	}

	direction := "DESC"
	if filters.Descending != nil && !*filters.Descending {
		direction = "ASC"
	}

	// id как вторичный ключ делает порядок стабильным при равных значениях
	return fmt.Sprintf("ORDER BY %s %s, l.id ASC", column, direction)
}
