package userinfo

const (
	columns = `id, user_id, firstname, lastname, alias, gender, email, phone, address_line_1, address_line_2, city, country, created_at, updated_at`

	SelectUserInfos = `
		SELECT ` + columns + `
		FROM user_info
		ORDER BY %s
		LIMIT $1 OFFSET $2
	`
	SelectUserInfoByID = `
		SELECT ` + columns + `
		FROM user_info
		WHERE id = $1
	`
	InsertUserInfo = `
		INSERT INTO user_info (user_id, firstname, lastname, alias, gender, email, phone, address_line_1, address_line_2, city, country, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + columns
	UpdateUserInfoByID = `
		UPDATE user_info
		SET user_id = $1,
		    firstname = $2,
		    lastname = $3,
		    alias = $4,
		    gender = $5,
		    email = $6,
		    phone = $7,
		    address_line_1 = $8,
		    address_line_2 = $9,
		    city = $10,
		    country = $11,
		    created_at = $12,
		    updated_at = $13
		WHERE id = $14
		RETURNING ` + columns
	ExistsUserInfoByID = `SELECT EXISTS (SELECT 1 FROM user_info WHERE id = $1)`
	DeleteUserInfoByID = `DELETE FROM user_info WHERE id = $1`
	CountUserInfos     = `SELECT count(*) FROM user_info`
)

// sortColumns maps JSON property names accepted in "sort" to table columns.
var sortColumns = map[string]string{
	"id":           "id",
	"userId":       "user_id",
	"firstname":    "firstname",
	"lastname":     "lastname",
	"alias":        "alias",
	"gender":       "gender",
	"email":        "email",
	"phone":        "phone",
	"addressLine1": "address_line_1",
	"addressLine2": "address_line_2",
	"city":         "city",
	"country":      "country",
	"createdAt":    "created_at",
	"updatedAt":    "updated_at",
}
