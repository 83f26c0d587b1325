package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Medicine 批次内单个药品条目
// 字段名是对外契约的一部分，expiryDate 的驼峰写法不可改动
type Medicine struct {
	Name       string `json:"name"`       // 药品名称
	Quantity   string `json:"quantity"`   // 数量（原样透传的字符串）
	ExpiryDate string `json:"expiryDate"` // 有效期，格式 2006-01-02
}

// Medicines 药品列表，整体以 JSON 存入单列
type Medicines []Medicine

// Value 实现 driver.Valuer 接口
func (m Medicines) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan 实现 sql.Scanner 接口
func (m *Medicines) Scan(value interface{}) error {
	if value == nil {
		*m = Medicines{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, sok := value.(string); sok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, m)
}

// Batch 药品批次表
// 记录只插入一次，之后仅 status 字段可被召回操作改写，从不删除
type Batch struct {
	ID        uint      `gorm:"primarykey" json:"-"`                                  // 主键
	BatchID   string    `gorm:"column:batch_id;uniqueIndex;not null" json:"batch_id"` // 批次号（对外查询键）
	Medicines Medicines `gorm:"type:json;not null" json:"medicines"`                  // 药品列表
	Status    string    `gorm:"default:'Authentic';not null" json:"status"`           // 落库状态（Authentic/Recalled）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                              // 创建时间
}

// TableName 指定表名
func (Batch) TableName() string {
	return "batches"
}
