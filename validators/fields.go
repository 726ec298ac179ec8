// Package validators contains the field-level input checks shared by the
// register, profile and post forms.
package validators

import (
	"regexp"
	"strconv"
	"strings"
)

type FieldError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

var (
	emailRegex       = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	nameSpecialRegex = regexp.MustCompile("[0-9`!@#$%^&*()_+\\-=\\[\\]{};':\"\\\\|,.<>/?~]")
)

// MinPrice là giá thấp nhất chấp nhận cho bài đăng cho thuê.
const MinPrice = 100000

// Validate kiểm tra từng trường theo tên và trả về danh sách lỗi cùng số lỗi.
// Mỗi lần gọi trả slice mới, caller không phải reset gì cả.
func Validate(fields map[string]string) ([]FieldError, int) {
	var invalids []FieldError

	add := func(name, message string) {
		invalids = append(invalids, FieldError{Name: name, Message: message})
	}

	for name, value := range fields {
		if value == "" {
			add(name, "Bạn không được bỏ trống trường này.")
			continue
		}

		switch name {
		case "password":
			if len(value) < 6 {
				add(name, "Mật khẩu phải có tối thiểu 6 kí tự.")
			}
			if strings.Contains(value, " ") {
				add(name, "Mật khẩu không được chứa dấu cách.")
			}
		case "name":
			if nameSpecialRegex.MatchString(value) {
				add(name, "Tên không được chứa số và ký tự đặc biệt.")
			}
		case "phone":
			if _, err := strconv.Atoi(value); err != nil {
				add(name, "Số điện thoại không hợp lệ.")
			} else if len(value) != 10 {
				add(name, "Số điện thoại phải có 10 số.")
			}
		case "price":
			// Nguồn cũ để nhánh này rơi thẳng xuống nhánh area/distance,
			// làm giá bị kiểm tra hai lần. Ở đây tách hẳn ra.
			if n, err := strconv.ParseFloat(value, 64); err != nil {
				add(name, "Trường này phải là số.")
			} else if n < MinPrice {
				add(name, "Giá nhập phải lớn hơn 100.000")
			}
		case "area", "distance":
			if n, err := strconv.ParseFloat(value, 64); err != nil {
				add(name, "Trường này phải là số.")
			} else if n <= 0 {
				add(name, "Giá trị phải lớn hơn 0.")
			}
		case "email":
			if !emailRegex.MatchString(value) {
				add(name, "Email không hợp lệ.")
			}
		}
	}

	return invalids, len(invalids)
}
