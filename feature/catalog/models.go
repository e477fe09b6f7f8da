package catalog

import "time"

// Catalog is one stored DAT header.
type Catalog struct {
	ID          uint      `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);uniqueIndex;not null" json:"name"`
	FileName    string    `gorm:"column:file_name;type:varchar(255)" json:"filename,omitempty"`
	Description string    `gorm:"column:description;type:varchar(512)" json:"description,omitempty"`
	Category    string    `gorm:"column:category;type:varchar(255)" json:"category,omitempty"`
	Version     string    `gorm:"column:version;type:varchar(64)" json:"version,omitempty"`
	Date        string    `gorm:"column:date;type:varchar(64)" json:"date,omitempty"`
	Author      string    `gorm:"column:author;type:varchar(255)" json:"author,omitempty"`
	Homepage    string    `gorm:"column:homepage;type:varchar(255)" json:"homepage,omitempty"`
	Comment     string    `gorm:"column:comment;type:text" json:"comment,omitempty"`
	DatType     string    `gorm:"column:dat_type;type:varchar(32)" json:"type,omitempty"`
	ItemCount   int64     `gorm:"column:item_count" json:"item_count"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`

	Items []Record `gorm:"foreignKey:CatalogID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Catalog) TableName() string {
	return "catalogs"
}

// Record is one stored item together with its machine.
type Record struct {
	ID        uint `gorm:"column:id;primaryKey"`
	CatalogID uint `gorm:"column:catalog_id;index;not null"`

	Machine            string `gorm:"column:machine;type:varchar(255);index"`
	MachineDescription string `gorm:"column:machine_description;type:varchar(512)"`
	MachineType        string `gorm:"column:machine_type;type:varchar(16)"`
	CloneOf            string `gorm:"column:clone_of;type:varchar(255)"`
	RomOf              string `gorm:"column:rom_of;type:varchar(255)"`
	SampleOf           string `gorm:"column:sample_of;type:varchar(255)"`
	Year               string `gorm:"column:year;type:varchar(16)"`
	Manufacturer       string `gorm:"column:manufacturer;type:varchar(255)"`
	MachineComment     string `gorm:"column:machine_comment;type:text"`
	MachineCategory    string `gorm:"column:machine_category;type:varchar(255)"`

	Type   string  `gorm:"column:type;type:varchar(32);not null"`
	Name   string  `gorm:"column:name;type:varchar(512)"`
	Size   int64   `gorm:"column:size"`
	CRC    *string `gorm:"column:crc;type:varchar(8);index"`
	MD5    *string `gorm:"column:md5;type:varchar(32)"`
	SHA1   *string `gorm:"column:sha1;type:varchar(40);index"`
	SHA256 *string `gorm:"column:sha256;type:varchar(64)"`
	SHA384 *string `gorm:"column:sha384;type:varchar(96)"`
	SHA512 *string `gorm:"column:sha512;type:varchar(128)"`
	Status string  `gorm:"column:status;type:varchar(16)"`

	Merge       string `gorm:"column:merge_name;type:varchar(255)"`
	Bios        string `gorm:"column:bios;type:varchar(255)"`
	Region      string `gorm:"column:region;type:varchar(64)"`
	Language    string `gorm:"column:language;type:varchar(64)"`
	Date        string `gorm:"column:date;type:varchar(64)"`
	Description string `gorm:"column:description;type:varchar(512)"`
	Value       string `gorm:"column:value;type:varchar(255)"`
	Tag         string `gorm:"column:tag;type:varchar(255)"`
	Mask        string `gorm:"column:mask;type:varchar(255)"`
	IsDefault   bool   `gorm:"column:is_default"`
	Optional    bool   `gorm:"column:optional"`
	Channels    int    `gorm:"column:channels"`
}

func (Record) TableName() string {
	return "catalog_items"
}

// Stats summarizes a stored catalog.
type Stats struct {
	Name      string           `json:"name"`
	Items     int64            `json:"items"`
	Machines  int64            `json:"machines"`
	TotalSize int64            `json:"total_size"`
	ByType    map[string]int64 `json:"by_type"`
	ByStatus  map[string]int64 `json:"by_status,omitempty"`
	Hashes    map[string]int64 `json:"hashes"`
}
