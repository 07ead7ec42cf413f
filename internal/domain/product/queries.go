package product

// Content store queries used by the catalog
const (
	listProjection = `{
  _id,
  title,
  price,
  "imageUrl": image.asset->url,
  originalPrice,
  isNew,
  isSale
}`

	// CatalogSliceQuery selects the fixed home page slice
	CatalogSliceQuery = `*[_type == "products"][1..8] ` + listProjection

	featuredQuery = `*[_type == "products" && title == $title][0] ` + listProjection

	detailQuery = `*[_type == "products" && _id == $id][0] {
  _id,
  title,
  price,
  "imageUrl": image.asset->url,
  originalPrice,
  isNew,
  isSale,
  description,
  "discount": *[_type == "discounts" && $id in applicableProducts[]->_id][0] {
    percentage,
    code
  }
}`

	// ComparisonSliceQuery selects the products offered for comparison
	ComparisonSliceQuery = `*[_type == "products"][1..8] {
  _id,
  title,
  price,
  priceWithoutDiscount,
  image,
  description,
  isNew,
  isSale
}`

	// SearchQuery matches product titles against $query
	SearchQuery = `*[_type == "products" && title match $query] {
  _id,
  title,
  price,
  "imageUrl": image.asset->url
}`

	categoriesQuery = `*[_type == "categories"] {
  _id,
  title,
  "imageUrl": image.asset->url,
  products
}`
)
