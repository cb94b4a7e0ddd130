package model

// Plan is one row of the plans table the query synthesizer writes SQL
// against. Columns stay lowercase so the unquoted identifiers in generated
// queries resolve after Postgres case folding.
type Plan struct {
	Id          int     `gorm:"column:id;primaryKey;autoIncrement"`
	Category    string  `gorm:"column:category;type:text;not null;index"`
	Plans       string  `gorm:"column:plans;type:text;not null"`
	Price       float64 `gorm:"column:price;not null"`
	Description string  `gorm:"column:description;type:text"`
}

func (Plan) TableName() string {
	return "plans"
}
