package shopify

const productFieldsFragment = `
  fragment ProductFields on Product {
    __typename
    id
    title
    handle
    createdAt
    descriptionHtml
    availableForSale
    images(first: $imagesFirst) {
      edges {
        node {
          id
          url
          altText
          width
          height
        }
      }
    }
    priceRange {
      maxVariantPrice {
        amount
        currencyCode
      }
    }
    artist: metafield(namespace: "custom", key: "artist") {
      value
    }
    category: metafield(namespace: "custom", key: "category") {
      value
    }
    dimensionsImperial: metafield(namespace: "custom", key: "dimensions_us") {
      value
    }
    dimensionsMetric: metafield(namespace: "custom", key: "dimensions_global") {
      value
    }
    medium: metafield(namespace: "custom", key: "medium") {
      value
    }
    style: metafield(namespace: "shopify", key: "art-movement") {
      references(first: 4) {
        nodes {
          __typename
          ...LabeledMetaobject
        }
      }
    }
    theme: metafield(namespace: "shopify", key: "theme") {
      references(first: 4) {
        nodes {
          __typename
          ...LabeledMetaobject
        }
      }
    }
  }
  fragment LabeledMetaobject on Metaobject {
    id
    handle
    label: field(key: "label") {
      value
    }
  }
`

const allProductsQuery = `
  query AllProducts(
    $first: Int!
    $after: String
    $sortKey: ProductSortKeys!
    $reverse: Boolean!
    $query: String
    $imagesFirst: Int!
  ) {
    products(
      first: $first
      after: $after
      sortKey: $sortKey
      reverse: $reverse
      query: $query
    ) {
      edges {
        cursor
        node {
          ...ProductFields
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
` + productFieldsFragment

const searchProductsQuery = `
  query SearchProducts(
    $first: Int!
    $after: String
    $query: String!
    $sortKey: SearchSortKeys!
    $reverse: Boolean!
    $productFilters: [ProductFilter!]
    $imagesFirst: Int!
  ) {
    search(
      first: $first
      after: $after
      query: $query
      types: [PRODUCT]
      unavailableProducts: HIDE
      sortKey: $sortKey
      reverse: $reverse
      productFilters: $productFilters
    ) {
      pageInfo {
        hasNextPage
        endCursor
      }
      nodes {
        __typename
        ... on Product {
          ...ProductFields
        }
      }
    }
  }
` + productFieldsFragment

const collectionProductsQuery = `
  query CollectionProducts(
    $handle: String!
    $first: Int!
    $after: String
    $sortKey: ProductCollectionSortKeys!
    $reverse: Boolean!
    $imagesFirst: Int!
  ) {
    collectionByHandle(handle: $handle) {
      products(
        first: $first
        after: $after
        sortKey: $sortKey
        reverse: $reverse
      ) {
        edges {
          cursor
          node {
            ...ProductFields
          }
        }
        pageInfo {
          hasNextPage
          endCursor
        }
      }
    }
  }
` + productFieldsFragment

const collectionsQuery = `
  query Collections($first: Int!, $after: String) {
    collections(first: $first, after: $after) {
      edges {
        node {
          handle
          title
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
`

const searchFilterFacetsQuery = `
  query SearchFilterFacets {
    search(query: "*", first: 1, types: [PRODUCT]) {
      productFilters {
        id
        label
        values {
          label
          input
        }
      }
    }
  }
`

const sitemapProductsQuery = `
  query SitemapProducts($first: Int!, $after: String) {
    products(first: $first, after: $after) {
      edges {
        node {
          handle
          updatedAt
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
`
