package hygraph

// Parameterized query strings against the content API schema. The
// "categories" field is an alias over the schema's union-typed "name"
// relation.

const queryListPosts = `
query ListPosts {
  posts(orderBy: publishedAt_DESC) {
    id
    title
    excerpt
    slug
    coverImage {
      url
    }
  }
}`

const queryPostBySlug = `
query GetPost($slug: String!) {
  post(where: { slug: $slug }) {
    id
    title
    slug
    excerpt
    publishedAt
    content {
      html
    }
    categories: name {
      ... on Category {
        id
        name
        slug
      }
    }
  }
}`

const queryRelatedPosts = `
query GetRelatedPosts($categorySlugs: [String!], $currentSlug: String!, $first: Int!) {
  posts(
    where: {
      slug_not: $currentSlug
      name_some: { Category: { slug_in: $categorySlugs } }
    }
    orderBy: publishedAt_DESC
    first: $first
  ) {
    id
    title
    slug
    publishedAt
    coverImage {
      url
    }
  }
}`

const queryTopic = `
query GetPostsByCategory($slug: String!) {
  category(where: { slug: $slug }) {
    id
    name
    slug
  }
  posts(
    where: { name_some: { Category: { slug: $slug } } }
    orderBy: publishedAt_DESC
  ) {
    id
    title
    slug
    publishedAt
    coverImage {
      url
    }
  }
  categories {
    id
    name
    slug
  }
}`

const querySearchPosts = `
query SearchPosts($query: String!, $first: Int!) {
  posts(
    where: { _search: $query }
    orderBy: publishedAt_DESC
    first: $first
  ) {
    id
    title
    slug
    excerpt
    publishedAt
    coverImage {
      url
    }
    categories: name {
      ... on Category {
        id
        name
        slug
      }
    }
  }
}`

const queryInstantSearch = `
query InstantSearch($query: String!, $first: Int!) {
  posts(
    where: {
      OR: [
        { title_contains: $query }
        { excerpt_contains: $query }
      ]
    }
    orderBy: publishedAt_DESC
    first: $first
  ) {
    id
    title
    slug
    publishedAt
    coverImage {
      url
    }
  }
}`
