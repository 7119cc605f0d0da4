package domain

import "time"

// 教练的业务方向，和训练组的 category 共用同一组取值
type Category string

const (
	CategoryUniversity    Category = "university"
	CategorySchoolPST     Category = "school pst"
	CategorySchoolDiploma Category = "school diploma"
	CategoryGrads         Category = "grads"
	CategoryCFK           Category = "CFK"
	CategoryPrivate       Category = "private"
	CategoryFlutter       Category = "flutter"
	CategoryFrontend      Category = "frontend"
	CategoryBackend       Category = "backend"
)

var Categories = []Category{
	CategoryUniversity,
	CategorySchoolPST,
	CategorySchoolDiploma,
	CategoryGrads,
	CategoryCFK,
	CategoryPrivate,
	CategoryFlutter,
	CategoryFrontend,
	CategoryBackend,
}

type Coach struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	HourRate  float64   `json:"hourRate"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
