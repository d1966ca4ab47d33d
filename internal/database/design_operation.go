// Package database
package database

import (
	"context"
	"errors"
	"github.com/half-nothing/smallcraft-designer/internal/interfaces/craft"
	. "github.com/half-nothing/smallcraft-designer/internal/interfaces/operation"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"strings"
	"time"
)

type DesignOperation struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

func NewDesignOperation(db *gorm.DB, queryTimeout time.Duration) *DesignOperation {
	return &DesignOperation{db: db, queryTimeout: queryTimeout}
}

func translateDesignError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrDesignNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDesignNameTaken
	default:
		return err
	}
}

func (designOperation *DesignOperation) NewDesignRecord(design craft.Design) *DesignRecord {
	payload := design.Normalize()
	payload.Name = strings.TrimSpace(payload.Name)
	record := &DesignRecord{
		ID:          design.Id,
		Name:        payload.Name,
		Description: payload.Description,
		Tonnage:     payload.Hull.Tonnage,
		TechLevel:   string(payload.Hull.TechLevel),
	}
	payload.Id = 0
	payload.CreatedAt = ""
	payload.UpdatedAt = ""
	record.Payload = datatypes.NewJSONType(payload)
	return record
}

func (designOperation *DesignOperation) GetDesigns() (designs []craft.Design, err error) {
	records := make([]*DesignRecord, 0)
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	if err = designOperation.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	designs = lo.Map(records, func(record *DesignRecord, _ int) craft.Design { return record.Design() })
	return
}

func (designOperation *DesignOperation) GetDesignById(id uint) (design craft.Design, err error) {
	record := &DesignRecord{}
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	err = designOperation.db.WithContext(ctx).
		Where("id = ?", id).
		First(record).Error
	if err != nil {
		return craft.Design{}, translateDesignError(err)
	}
	return record.Design(), nil
}

func (designOperation *DesignOperation) saveDesign(tx *gorm.DB, design craft.Design) (uint, error) {
	record := designOperation.NewDesignRecord(design)
	if record.Name == "" {
		return 0, ErrDesignNameEmpty
	}

	taken, err := designOperation.isNameTaken(tx, record.Name, record.ID)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, ErrDesignNameTaken
	}

	if record.ID != 0 {
		existing := &DesignRecord{}
		err = tx.Select("id", "created_at").Where("id = ?", record.ID).First(existing).Error
		switch {
		case err == nil:
			record.CreatedAt = existing.CreatedAt
			return record.ID, translateDesignError(tx.Save(record).Error)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return 0, err
		}
	}

	if err = tx.Create(record).Error; err != nil {
		return 0, translateDesignError(err)
	}
	return record.ID, nil
}

func (designOperation *DesignOperation) SaveDesign(design craft.Design) (id uint, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	err = designOperation.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err = designOperation.saveDesign(tx, design)
		return err
	})
	return
}

func (designOperation *DesignOperation) SaveDesigns(designs []craft.Design) (ids []uint, err error) {
	ids = make([]uint, 0, len(designs))
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout*time.Duration(max(len(designs), 1)))
	defer cancel()
	err = designOperation.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, design := range designs {
			id, err := designOperation.saveDesign(tx, design)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return
}

func (designOperation *DesignOperation) DeleteDesign(id uint) error {
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	result := designOperation.db.WithContext(ctx).Delete(&DesignRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDesignNotFound
	}
	return nil
}

func (designOperation *DesignOperation) DeleteAllDesigns() (deleted int64, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	result := designOperation.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&DesignRecord{})
	return result.RowsAffected, result.Error
}

func (designOperation *DesignOperation) isNameTaken(tx *gorm.DB, name string, excludeId uint) (bool, error) {
	var total int64
	query := tx.Model(&DesignRecord{}).Where("name = ?", strings.TrimSpace(name))
	if excludeId != 0 {
		query = query.Where("id <> ?", excludeId)
	}
	if err := query.Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

func (designOperation *DesignOperation) IsNameTaken(name string, excludeId uint) (taken bool, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	return designOperation.isNameTaken(designOperation.db.WithContext(ctx), name, excludeId)
}

func (designOperation *DesignOperation) CountDesigns() (total int64, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), designOperation.queryTimeout)
	defer cancel()
	err = designOperation.db.WithContext(ctx).Model(&DesignRecord{}).Count(&total).Error
	return
}
