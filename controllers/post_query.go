package controllers

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/thanhdo-1929/service-finder/models"

	"gorm.io/gorm"
)

// postQuery gom các điều kiện lọc bài đăng thành danh sách mệnh đề có tên
// rồi mới render xuống gorm, thay cho việc vá object query theo từng nhánh if.
type postQuery struct {
	clauses  []namedClause
	joinUser bool
	orderBy  string
	page     int
	limit    int
}

type namedClause struct {
	name string
	cond string
	args []interface{}
}

// Cột được phép sort, chặn injection qua tham số order. Client cũ gửi tên
// trường dạng camelCase nên nhận cả hai cách viết.
var sortableColumns = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"price":      "price",
	"area":       "area",
	"distance":   "distance",
	"star":       "star",
	"views":      "views",
	"title":      "title",
}

func defaultPostLimit() int {
	if v := os.Getenv("POST_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 10
}

func newPostQuery() *postQuery {
	return &postQuery{
		orderBy: "updated_at DESC",
		page:    1,
		limit:   defaultPostLimit(),
	}
}

func (q *postQuery) add(name, cond string, args ...interface{}) *postQuery {
	q.clauses = append(q.clauses, namedClause{name: name, cond: cond, args: args})
	return q
}

// Search khớp chuỗi con trên title, address hoặc tên người đăng.
func (q *postQuery) Search(term string) *postQuery {
	term = strings.TrimSpace(term)
	if term == "" {
		return q
	}
	q.joinUser = true
	pattern := "%" + term + "%"
	return q.add("search",
		"(posts.title LIKE ? OR posts.address LIKE ? OR users.name LIKE ?)",
		pattern, pattern, pattern)
}

func (q *postQuery) Title(title string) *postQuery {
	if title == "" {
		return q
	}
	return q.add("title", "posts.title LIKE ?", "%"+title+"%")
}

func (q *postQuery) Category(code string) *postQuery {
	if code == "" {
		return q
	}
	return q.add("category", "posts.category_code = ?", code)
}

// Range nhận bounds dạng "min,max" và dựng mệnh đề BETWEEN bao gồm hai đầu.
func (q *postQuery) Range(column, bounds string) *postQuery {
	low, high, ok := parseRange(bounds)
	if !ok {
		return q
	}
	return q.add(column, fmt.Sprintf("posts.%s BETWEEN ? AND ?", column), low, high)
}

func (q *postQuery) Owner(uid uint) *postQuery {
	return q.add("owner", "posts.posted_by = ?", uid)
}

// Order nhận "column" hoặc "column DESC"; cột lạ thì giữ mặc định.
func (q *postQuery) Order(order string) *postQuery {
	order = strings.TrimSpace(order)
	if order == "" {
		return q
	}

	parts := strings.Fields(order)
	column, ok := sortableColumns[parts[0]]
	if !ok {
		return q
	}

	direction := "ASC"
	if len(parts) > 1 && strings.EqualFold(parts[1], "DESC") {
		direction = "DESC"
	}

	q.orderBy = "posts." + column + " " + direction
	return q
}

// Page là 1-based; 0 hoặc âm coi như trang 1.
func (q *postQuery) Page(page int) *postQuery {
	if page > 0 {
		q.page = page
	}
	return q
}

func (q *postQuery) Limit(limit int) *postQuery {
	if limit > 0 {
		q.limit = limit
	}
	return q
}

func (q *postQuery) offset() int {
	return (q.page - 1) * q.limit
}

func (q *postQuery) apply(tx *gorm.DB) *gorm.DB {
	if q.joinUser {
		tx = tx.Joins("JOIN users ON users.id = posts.posted_by")
	}
	for _, cl := range q.clauses {
		tx = tx.Where(cl.cond, cl.args...)
	}
	return tx
}

// Find trả về một trang kết quả cùng tổng số dòng khớp bộ lọc.
func (q *postQuery) Find(db *gorm.DB) ([]models.Post, int64, error) {
	var count int64
	if err := q.apply(db.Model(&models.Post{})).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := q.apply(db.Model(&models.Post{})).
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Category").
		Preload("Foodtype").
		Order(q.orderBy).
		Limit(q.limit).
		Offset(q.offset()).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, count, nil
}

func parseRange(bounds string) (float64, float64, bool) {
	bounds = strings.Trim(bounds, "[]")
	parts := strings.Split(bounds, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}

	low, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	high, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}

	return low, high, true
}
