package entity

type Plan struct {
	Base
	Name        string   `db:"name"`
	Description string   `db:"description"`
	Price       float64  `db:"price"`
	Duration    int      `db:"duration"` // minutes
	Features    []string `db:"features"`
	IsActive    bool     `db:"is_active"`
}
