// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/storage"
	"folio/internal/store"
)

// Admin groups the admin panel HTTP handlers and their dependencies.
type Admin struct {
	renderer    *render.Renderer
	posts       *store.PostStore
	projects    *store.ProjectStore
	experiences *store.ExperienceStore
	media       *store.MediaStore
	storage     *storage.Client
}

// NewAdmin creates a new Admin handler group. storageClient may be nil
// if S3 is not configured; uploads are then disabled.
func NewAdmin(renderer *render.Renderer, posts *store.PostStore, projects *store.ProjectStore, experiences *store.ExperienceStore, media *store.MediaStore, storageClient *storage.Client) *Admin {
	return &Admin{
		renderer:    renderer,
		posts:       posts,
		projects:    projects,
		experiences: experiences,
		media:       media,
		storage:     storageClient,
	}
}

// Dashboard renders the admin dashboard with content counts.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin/dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"PostCount":       a.posts.Count(),
			"ProjectCount":    a.projects.Count(),
			"ExperienceCount": a.experiences.Count(),
		},
	})
}

// pathID parses the {id} URL parameter. Returns uuid.Nil on garbage.
func pathID(r *http.Request) uuid.UUID {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil
	}
	return id
}

// --- Posts ---

// PostsList renders the post management page, drafts included.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin/posts", &render.PageData{
		Title:   "Posts",
		Section: "posts",
		Data:    map[string]any{"Posts": a.posts.List()},
	})
}

// PostNew renders the new post form.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.postForm(w, r, &models.BlogPost{PublishedAt: time.Now()}, "/admin/posts", "")
}

// PostEdit renders the edit post form, or 404 for an unknown ID.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	post := a.posts.FindByID(pathID(r))
	if post == nil {
		a.renderer.NotFound(w, r)
		return
	}
	a.postForm(w, r, post, "/admin/posts/"+post.ID.String(), "")
}

func (a *Admin) postForm(w http.ResponseWriter, r *http.Request, post *models.BlogPost, action, errMsg string) {
	title := "New post"
	if post.ID != uuid.Nil {
		title = "Edit post"
	}
	a.renderer.Page(w, r, "admin/post_form", &render.PageData{
		Title:   title,
		Section: "posts",
		Error:   errMsg,
		Data:    map[string]any{"Post": post, "Action": action},
	})
}

// postFromForm builds a post from form values. Validation runs first;
// the returned message is empty when the form is valid.
func postFromForm(r *http.Request) (*models.BlogPost, string) {
	title := r.FormValue("title")
	slug := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	publishedAt := r.FormValue("published_at")

	if errMsg := validatePost(title, slug, content, publishedAt); errMsg != "" {
		return nil, errMsg
	}

	published, _ := time.Parse(dateLayout, publishedAt)
	return &models.BlogPost{
		Slug:        slug,
		Title:       strings.TrimSpace(title),
		Summary:     r.FormValue("summary"),
		Content:     content,
		Image:       optionalURL(r.FormValue("image")),
		PublishedAt: published,
		IsPublished: r.FormValue("is_published") != "",
	}, ""
}

// PostCreate handles the new post form submission.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	post, errMsg := postFromForm(r)
	if errMsg != "" {
		a.postForm(w, r, &models.BlogPost{PublishedAt: time.Now()}, "/admin/posts", errMsg)
		return
	}

	if _, err := a.posts.Create(post); err != nil {
		slog.Error("create post failed", "slug", post.Slug, "error", err)
		a.postForm(w, r, post, "/admin/posts", "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostUpdate handles the edit post form submission.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if a.posts.FindByID(id) == nil {
		a.renderer.NotFound(w, r)
		return
	}

	post, errMsg := postFromForm(r)
	if errMsg != "" {
		existing := a.posts.FindByID(id)
		a.postForm(w, r, existing, "/admin/posts/"+id.String(), errMsg)
		return
	}
	post.ID = id

	if _, err := a.posts.Update(post); err != nil {
		slog.Error("update post failed", "id", id, "error", err)
		a.postForm(w, r, post, "/admin/posts/"+id.String(), "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete handles post deletion.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := a.posts.Delete(pathID(r)); err != nil {
		slog.Error("delete post failed", "error", err)
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// --- Projects ---

// ProjectsList renders the project management page.
func (a *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin/projects", &render.PageData{
		Title:   "Projects",
		Section: "projects",
		Data:    map[string]any{"Projects": a.projects.List()},
	})
}

// ProjectNew renders the new project form.
func (a *Admin) ProjectNew(w http.ResponseWriter, r *http.Request) {
	a.projectForm(w, r, &models.Project{PublishedAt: time.Now()}, "/admin/projects", "")
}

// ProjectEdit renders the edit project form, or 404 for an unknown ID.
func (a *Admin) ProjectEdit(w http.ResponseWriter, r *http.Request) {
	project := a.projects.FindByID(pathID(r))
	if project == nil {
		a.renderer.NotFound(w, r)
		return
	}
	a.projectForm(w, r, project, "/admin/projects/"+project.ID.String(), "")
}

func (a *Admin) projectForm(w http.ResponseWriter, r *http.Request, project *models.Project, action, errMsg string) {
	title := "New project"
	if project.ID != uuid.Nil {
		title = "Edit project"
	}
	a.renderer.Page(w, r, "admin/project_form", &render.PageData{
		Title:   title,
		Section: "projects",
		Error:   errMsg,
		Data:    map[string]any{"Project": project, "Action": action},
	})
}

func projectFromForm(r *http.Request) (*models.Project, string) {
	title := r.FormValue("title")
	slug := strings.TrimSpace(r.FormValue("slug"))
	content := r.FormValue("content")
	publishedAt := r.FormValue("published_at")

	if errMsg := validatePost(title, slug, content, publishedAt); errMsg != "" {
		return nil, errMsg
	}

	published, _ := time.Parse(dateLayout, publishedAt)
	return &models.Project{
		Slug:        slug,
		Title:       strings.TrimSpace(title),
		Summary:     r.FormValue("summary"),
		Content:     content,
		Image:       optionalURL(r.FormValue("image")),
		Tech:        optionalString(r.FormValue("tech")),
		GithubURL:   optionalURL(r.FormValue("github_url")),
		DemoURL:     optionalURL(r.FormValue("demo_url")),
		PublishedAt: published,
		IsPublished: r.FormValue("is_published") != "",
	}, ""
}

// ProjectCreate handles the new project form submission.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	project, errMsg := projectFromForm(r)
	if errMsg != "" {
		a.projectForm(w, r, &models.Project{PublishedAt: time.Now()}, "/admin/projects", errMsg)
		return
	}

	if _, err := a.projects.Create(project); err != nil {
		slog.Error("create project failed", "slug", project.Slug, "error", err)
		a.projectForm(w, r, project, "/admin/projects", "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// ProjectUpdate handles the edit project form submission.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if a.projects.FindByID(id) == nil {
		a.renderer.NotFound(w, r)
		return
	}

	project, errMsg := projectFromForm(r)
	if errMsg != "" {
		existing := a.projects.FindByID(id)
		a.projectForm(w, r, existing, "/admin/projects/"+id.String(), errMsg)
		return
	}
	project.ID = id

	if _, err := a.projects.Update(project); err != nil {
		slog.Error("update project failed", "id", id, "error", err)
		a.projectForm(w, r, project, "/admin/projects/"+id.String(), "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// ProjectDelete handles project deletion.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := a.projects.Delete(pathID(r)); err != nil {
		slog.Error("delete project failed", "error", err)
	}
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// --- Work experience ---

// ExperienceList renders the work experience management page.
func (a *Admin) ExperienceList(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "admin/experience", &render.PageData{
		Title:   "Work experience",
		Section: "experience",
		Data:    map[string]any{"Entries": a.experiences.List()},
	})
}

// ExperienceNew renders the new entry form.
func (a *Admin) ExperienceNew(w http.ResponseWriter, r *http.Request) {
	entry := &models.WorkExperience{
		StartDate:    time.Now(),
		DisplayOrder: a.experiences.Count() + 1,
	}
	a.experienceForm(w, r, entry, "/admin/experience", "")
}

// ExperienceEdit renders the edit entry form, or 404 for an unknown ID.
func (a *Admin) ExperienceEdit(w http.ResponseWriter, r *http.Request) {
	entry := a.experiences.FindByID(pathID(r))
	if entry == nil {
		a.renderer.NotFound(w, r)
		return
	}
	a.experienceForm(w, r, entry, "/admin/experience/"+entry.ID.String(), "")
}

func (a *Admin) experienceForm(w http.ResponseWriter, r *http.Request, entry *models.WorkExperience, action, errMsg string) {
	title := "New entry"
	if entry.ID != uuid.Nil {
		title = "Edit entry"
	}
	a.renderer.Page(w, r, "admin/experience_form", &render.PageData{
		Title:   title,
		Section: "experience",
		Error:   errMsg,
		Data:    map[string]any{"Entry": entry, "Action": action},
	})
}

func experienceFromForm(r *http.Request) (*models.WorkExperience, string) {
	companyName := r.FormValue("company_name")
	position := r.FormValue("position")
	startDate := r.FormValue("start_date")
	endDate := r.FormValue("end_date")
	isCurrent := r.FormValue("is_current") != ""

	if errMsg := validateExperience(companyName, position, startDate, endDate, isCurrent); errMsg != "" {
		return nil, errMsg
	}

	start, _ := time.Parse(dateLayout, startDate)
	var end *time.Time
	if endDate != "" {
		parsed, _ := time.Parse(dateLayout, endDate)
		end = &parsed
	}

	order, err := strconv.Atoi(r.FormValue("display_order"))
	if err != nil || order < 0 {
		return nil, "Display order must be a non-negative number."
	}

	return &models.WorkExperience{
		CompanyName:  strings.TrimSpace(companyName),
		CompanyURL:   optionalURL(r.FormValue("company_url")),
		Position:     strings.TrimSpace(position),
		Location:     optionalString(r.FormValue("location")),
		FaviconURL:   optionalURL(r.FormValue("favicon_url")),
		StartDate:    start,
		EndDate:      end,
		IsCurrent:    isCurrent,
		DisplayOrder: order,
	}, ""
}

// ExperienceCreate handles the new entry form submission.
func (a *Admin) ExperienceCreate(w http.ResponseWriter, r *http.Request) {
	entry, errMsg := experienceFromForm(r)
	if errMsg != "" {
		a.experienceForm(w, r, &models.WorkExperience{StartDate: time.Now()}, "/admin/experience", errMsg)
		return
	}

	if _, err := a.experiences.Create(entry); err != nil {
		slog.Error("create experience failed", "company", entry.CompanyName, "error", err)
		a.experienceForm(w, r, entry, "/admin/experience", "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/experience", http.StatusSeeOther)
}

// ExperienceUpdate handles the edit entry form submission.
func (a *Admin) ExperienceUpdate(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if a.experiences.FindByID(id) == nil {
		a.renderer.NotFound(w, r)
		return
	}

	entry, errMsg := experienceFromForm(r)
	if errMsg != "" {
		existing := a.experiences.FindByID(id)
		a.experienceForm(w, r, existing, "/admin/experience/"+id.String(), errMsg)
		return
	}
	entry.ID = id

	if _, err := a.experiences.Update(entry); err != nil {
		slog.Error("update experience failed", "id", id, "error", err)
		a.experienceForm(w, r, entry, "/admin/experience/"+id.String(), "Saving failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin/experience", http.StatusSeeOther)
}

// ExperienceSetCurrent promotes one entry to the single current
// position, demoting every other entry.
func (a *Admin) ExperienceSetCurrent(w http.ResponseWriter, r *http.Request) {
	if err := a.experiences.SetCurrent(pathID(r)); err != nil {
		slog.Error("set current experience failed", "error", err)
	}
	http.Redirect(w, r, "/admin/experience", http.StatusSeeOther)
}

// ExperienceDelete handles entry deletion.
func (a *Admin) ExperienceDelete(w http.ResponseWriter, r *http.Request) {
	if _, err := a.experiences.Delete(pathID(r)); err != nil {
		slog.Error("delete experience failed", "error", err)
	}
	http.Redirect(w, r, "/admin/experience", http.StatusSeeOther)
}
