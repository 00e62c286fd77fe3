// internal/models/catalog.go
package models

// PropertyType discriminates how a property's values are aggregated.
type PropertyType string

const (
	PropertyTypeInt    PropertyType = "int"
	PropertyTypeString PropertyType = "string"
)

// Numeric reports whether values of this type are aggregated as integers.
func (t PropertyType) Numeric() bool {
	return t == PropertyTypeInt
}

type Product struct {
	UID  string `json:"uid" gorm:"column:uid;primaryKey;size:64"`
	Name string `json:"name" gorm:"size:255;not null"`

	// Properties may be shared between products; the join table is
	// product_property with a composite primary key.
	Properties []Property `json:"properties" gorm:"many2many:product_property;foreignKey:UID;joinForeignKey:ProductUID;references:UID;joinReferences:PropertyUID"`
}

func (Product) TableName() string { return "products" }

type Property struct {
	UID  string       `json:"uid" gorm:"column:uid;primaryKey;size:64"`
	Name string       `json:"name" gorm:"size:255;not null"`
	Type PropertyType `json:"type" gorm:"size:32;not null"`

	// Values are owned exclusively by their property and are deleted
	// together with it.
	Values []PropertyValue `json:"values" gorm:"foreignKey:PropertyUID;references:UID;constraint:OnDelete:CASCADE"`
}

func (Property) TableName() string { return "properties" }

type PropertyValue struct {
	ValueUID    string `json:"value_uid" gorm:"column:value_uid;primaryKey;size:64"`
	Value       string `json:"value" gorm:"not null"`
	PropertyUID string `json:"-" gorm:"column:property_uid;size:64;not null;index"`
}

func (PropertyValue) TableName() string { return "property_values" }

// ProductProperty is the explicit join model for the product<->property
// association, registered via SetupJoinTable so writes can use
// ON CONFLICT DO NOTHING for idempotent linking.
type ProductProperty struct {
	ProductUID  string `gorm:"column:product_uid;primaryKey;size:64"`
	PropertyUID string `gorm:"column:property_uid;primaryKey;size:64"`
}

func (ProductProperty) TableName() string { return "product_property" }
