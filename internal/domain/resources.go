package domain

import (
	"time"

	"gorm.io/gorm"
)

// Admin-managed resources. Each is an independent CRUD module sharing the
// same envelope and pagination shape; the ez registrar mounts them.

type Category struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:64;not null" json:"name" binding:"required,max=64"`
	Slug      string         `gorm:"uniqueIndex;size:80" json:"slug"`
	Icon      string         `gorm:"size:255" json:"icon"`
	Active    bool           `gorm:"default:true" json:"active"`
	SortOrder int            `gorm:"default:0;index" json:"sortOrder"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Category) TableName() string { return "categories" }

type Banner struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Title     string         `gorm:"size:128" json:"title" binding:"required,max=128"`
	Image     string         `gorm:"size:255" json:"image"`
	Link      string         `gorm:"size:255" json:"link"`
	Active    bool           `gorm:"default:true" json:"active"`
	SortOrder int            `gorm:"default:0;index" json:"sortOrder"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banner) TableName() string { return "banners" }

type Property struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	Title       string         `gorm:"size:191;not null" json:"title" binding:"required,max=191"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"index" json:"price"`
	CategoryID  string         `gorm:"size:36;index" json:"categoryId"`
	OwnerID     string         `gorm:"size:36;index" json:"ownerId"`
	City        string         `gorm:"size:64;index" json:"city"`
	Images      string         `gorm:"type:text" json:"images"`                     // JSON array of upload paths
	Status      string         `gorm:"size:16;default:pending;index" json:"status"` // pending/approved/rejected/sold
	Featured    bool           `gorm:"default:false" json:"featured"`
	Active      bool           `gorm:"default:true" json:"active"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Property) TableName() string { return "properties" }

type Notification struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Title     string         `gorm:"size:128" json:"title" binding:"required,max=128"`
	Body      string         `gorm:"type:text" json:"body"`
	Audience  string         `gorm:"size:16;default:all" json:"audience"` // all or a userType
	SentAt    *time.Time     `json:"sentAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

type Setting struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:64;not null" json:"key" binding:"required,max=64"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Setting) TableName() string { return "settings" }

// CustomField drives dynamic per-category property forms in the admin UI.
type CustomField struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	CategoryID string         `gorm:"size:36;index" json:"categoryId"`
	Label      string         `gorm:"size:64;not null" json:"label" binding:"required,max=64"`
	FieldType  string         `gorm:"size:16;default:text" json:"fieldType"` // text/number/select/checkbox
	Options    string         `gorm:"type:text" json:"options"`              // JSON array for select fields
	Required   bool           `gorm:"default:false" json:"required"`
	SortOrder  int            `gorm:"default:0;index" json:"sortOrder"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (CustomField) TableName() string { return "custom_fields" }

type Page struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Title     string         `gorm:"size:128;not null" json:"title" binding:"required,max=128"`
	Slug      string         `gorm:"uniqueIndex;size:128" json:"slug"`
	Content   string         `gorm:"type:text" json:"content"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Page) TableName() string { return "pages" }
