// Package operation
package operation

import (
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	"gorm.io/datatypes"
	"time"
)

var (
	// ErrDesignNotFound 设计不存在
	ErrDesignNotFound = errors.New("design does not exist")
	// ErrDesignNameTaken 设计名称已被占用
	ErrDesignNameTaken = errors.New("design name has been used")
	// ErrDesignNameEmpty 设计名称为空
	ErrDesignNameEmpty = errors.New("design name cannot be empty")
)

// DesignRecord 设计记录, 完整设计保存在Payload中, 其余列用于列表与查询
type DesignRecord struct {
	ID          uint                             `gorm:"primarykey"`
	Name        string                           `gorm:"size:128;uniqueIndex;not null"`
	Description string                           `gorm:"type:text;not null"`
	Tonnage     int                              `gorm:"default:0;not null"`
	TechLevel   string                           `gorm:"size:1;not null"`
	Payload     datatypes.JSONType[craft.Design] `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Design 将记录还原为设计, 主键与时间戳以数据库列为准
func (record *DesignRecord) Design() craft.Design {
	design := record.Payload.Data().Normalize()
	design.Id = record.ID
	design.Name = record.Name
	design.Description = record.Description
	if !record.CreatedAt.IsZero() {
		design.CreatedAt = record.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !record.UpdatedAt.IsZero() {
		design.UpdatedAt = record.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return design
}

// DesignOperationInterface 设计记录操作接口定义
type DesignOperationInterface interface {
	// NewDesignRecord 从设计创建记录(只是创建, 没有写入数据库), design.Id非零时沿用该主键
	NewDesignRecord(design craft.Design) (record *DesignRecord)
	// GetDesigns 按主键顺序获取全部设计, 当err为nil时返回值designs有效
	GetDesigns() (designs []craft.Design, err error)
	// GetDesignById 通过主键获取设计, 当err为nil时返回值design有效
	GetDesignById(id uint) (design craft.Design, err error)
	// SaveDesign 创建或更新设计, 写入前检查名称唯一性, 当err为nil时返回值id有效
	SaveDesign(design craft.Design) (id uint, err error)
	// SaveDesigns 在同一事务中保存多个设计, 任意一个失败则全部回滚
	SaveDesigns(designs []craft.Design) (ids []uint, err error)
	// DeleteDesign 删除设计, 当err为nil时表示删除成功
	DeleteDesign(id uint) (err error)
	// DeleteAllDesigns 删除全部设计, 返回删除的数量
	DeleteAllDesigns() (deleted int64, err error)
	// IsNameTaken 检查名称是否已被除excludeId以外的设计使用
	IsNameTaken(name string, excludeId uint) (taken bool, err error)
	// CountDesigns 获取设计总数
	CountDesigns() (total int64, err error)
}
