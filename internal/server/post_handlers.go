package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetPosts returns a page of published posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	list, err := s.posts.ListPublished(c.UserContext(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetPostBySlug returns one published post for the article page.
func (s *Server) GetPostBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	post, err := s.posts.GetBySlug(c.UserContext(), slug, currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

// GetFeaturedPosts returns the homepage hero posts.
func (s *Server) GetFeaturedPosts(c *fiber.Ctx) error {
	posts, err := s.posts.ListFeatured(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetTrendingPosts returns the most-viewed published posts.
func (s *Server) GetTrendingPosts(c *fiber.Ctx) error {
	posts, err := s.posts.ListTrending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetPostsByCategory returns a page of posts in one category.
func (s *Server) GetPostsByCategory(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	list, err := s.posts.ListByCategory(c.UserContext(), c.Params("category"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetRelatedPosts returns posts sharing a category with the given post.
func (s *Server) GetRelatedPosts(c *fiber.Ctx) error {
	posts, err := s.posts.ListRelated(c.UserContext(), c.Params("slug"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// SearchPosts runs a substring search over the published catalogue.
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	list, err := s.posts.Search(c.UserContext(), c.Query("q"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetCategories returns every category in use across published posts.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.posts.ListCategories(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}
