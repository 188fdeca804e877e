package decoder

import "strconv"

// Feed wire format delimiters.
const (
	RecordDelimiter = "#|#"
	FieldDelimiter  = "~|~"
)

// FieldType declares how raw field value is sanitized.
type FieldType int

// Field types.
const (
	// FieldString is trimmed and html entity decoded string.
	FieldString FieldType = iota
	// FieldText is string with all markup stripped.
	FieldText
	// FieldHTML is string restricted to safe html subset.
	FieldHTML
	// FieldDecimal is decimal number accepting both comma and dot as separator.
	FieldDecimal
	// FieldInt is integer number.
	FieldInt
	// FieldFlag is boolean-like flag.
	FieldFlag
)

// Feed field names.
const (
	FieldCode                 = "cod"
	FieldName                 = "descrizione"
	FieldDescription          = "descrizione_estesa"
	FieldPrice                = "prezzo"
	FieldDiscount             = "sconto"
	FieldWeight               = "peso"
	FieldStockOnHand          = "giacenza"
	FieldStockAvailable       = "disponibilita"
	FieldStockIncoming        = "disponibilita_futura"
	FieldEAN                  = "ean"
	FieldBrand                = "marca"
	FieldCategories           = "categorie"
	FieldImage                = "immagine"
	FieldExclude              = "escludi"
	FieldUpdatedAt            = "data_modifica"
	FieldGroupCode            = "cod_padre"
	FieldSize                 = "taglia"
	FieldColor                = "colore"
	FieldLotCount             = "lotto"
	galleryFieldPrefix        = "immagine_"
	variationImageFieldPrefix = "immagine_variante_"
)

// Number of gallery and variation image fields.
const (
	GallerySize         = 4
	VariationImagesSize = 8
)

// Field is single positional field of feed record.
type Field struct {
	Name string
	Type FieldType
}

// SchemaKind identifies one of fixed feed schemas.
type SchemaKind int

// Feed schemas.
const (
	// SchemaSimple is feed without variation support.
	SchemaSimple SchemaKind = iota
	// SchemaVariable is feed with variation rows.
	SchemaVariable
	// SchemaVariableImages is feed with variation rows and variation images.
	SchemaVariableImages
)

// String returns schema name.
func (k SchemaKind) String() string {
	switch k {
	case SchemaSimple:
		return "simple"
	case SchemaVariable:
		return "variable"
	case SchemaVariableImages:
		return "variable+images"
	default:
		return "unknown"
	}
}

// Schema is ordered list of fields of feed record.
type Schema struct {
	Kind   SchemaKind
	Fields []Field
}

// Width returns number of fields required by schema.
func (s Schema) Width() int {
	return len(s.Fields)
}

// Variable reports whether schema carries variation rows.
func (s Schema) Variable() bool {
	return s.Kind != SchemaSimple
}

// SelectSchema returns schema kind for provided feed feature flags.
// Variation images are ignored when variations are disabled.
func SelectSchema(variations, variationImages bool) SchemaKind {
	switch {
	case variations && variationImages:
		return SchemaVariableImages
	case variations:
		return SchemaVariable
	default:
		return SchemaSimple
	}
}

// SchemaFor returns schema of provided kind.
func SchemaFor(kind SchemaKind) Schema {
	switch kind {
	case SchemaVariable:
		return Schema{Kind: kind, Fields: variableFields()}
	case SchemaVariableImages:
		return Schema{Kind: kind, Fields: variableImagesFields()}
	default:
		return Schema{Kind: SchemaSimple, Fields: simpleFields()}
	}
}

func simpleFields() []Field {
	fields := []Field{
		{Name: FieldCode, Type: FieldString},
		{Name: FieldName, Type: FieldText},
		{Name: FieldDescription, Type: FieldHTML},
		{Name: FieldPrice, Type: FieldDecimal},
		{Name: FieldDiscount, Type: FieldDecimal},
		{Name: FieldWeight, Type: FieldDecimal},
		{Name: FieldStockOnHand, Type: FieldInt},
		{Name: FieldStockAvailable, Type: FieldInt},
		{Name: FieldStockIncoming, Type: FieldInt},
		{Name: FieldEAN, Type: FieldString},
		{Name: FieldBrand, Type: FieldString},
		{Name: FieldCategories, Type: FieldString},
		{Name: FieldImage, Type: FieldString},
	}
	for ix := range GallerySize {
		fields = append(fields, Field{Name: GalleryField(ix), Type: FieldString})
	}

	return append(fields,
		Field{Name: FieldExclude, Type: FieldFlag},
		Field{Name: FieldUpdatedAt, Type: FieldString},
	)
}

func variableFields() []Field {
	return append(simpleFields(),
		Field{Name: FieldGroupCode, Type: FieldString},
		Field{Name: FieldSize, Type: FieldString},
		Field{Name: FieldColor, Type: FieldString},
		Field{Name: FieldLotCount, Type: FieldInt},
	)
}

func variableImagesFields() []Field {
	fields := variableFields()
	for ix := range VariationImagesSize {
		fields = append(fields, Field{Name: VariationImageField(ix), Type: FieldString})
	}

	return fields
}

// GalleryField returns name of ix-th (0-based) gallery image field.
func GalleryField(ix int) string {
	return galleryFieldPrefix + strconv.Itoa(ix+2)
}

// VariationImageField returns name of ix-th (0-based) variation image field.
func VariationImageField(ix int) string {
	return variationImageFieldPrefix + strconv.Itoa(ix+1)
}
