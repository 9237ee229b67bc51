// Package kbmigrate migrates a MindTouch HTML export into Salesforce
// Knowledge articles. It transforms exported pages into clean article HTML,
// resolves embedded images and attachments to files on disk, uploads them,
// and creates the articles with the final file URLs substituted back in.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, salesforce/).
package kbmigrate
