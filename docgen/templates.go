package docgen

// Built-in document types. Each template is a prompt with {title}, {content}
// and {context} placeholders filled by interpolate before the AI call.

func builtinTypes() []DocumentType {
	return []DocumentType{
		{
			ID:          "sop",
			Description: "Standard Operating Procedure - Step-by-step process documentation",
			Template:    sopTemplate,
			Builtin:     true,
		},
		{
			ID:          "runbook",
			Description: "Operational Runbook - Troubleshooting and maintenance procedures",
			Template:    runbookTemplate,
			Builtin:     true,
		},
		{
			ID:          "architecture",
			Description: "High-level Architectural Documentation - System design and components",
			Template:    architectureTemplate,
			Builtin:     true,
		},
		{
			ID:          "implementation",
			Description: "Implementation-level Documentation - Detailed technical specifications",
			Template:    implementationTemplate,
			Builtin:     true,
		},
		{
			ID:          "meeting_summary",
			Description: "Meeting Summary - Key decisions, action items, and outcomes",
			Template:    meetingSummaryTemplate,
			Builtin:     true,
		},
		{
			ID:          "technical_spec",
			Description: "Technical Specification - Detailed feature or component specification",
			Template:    technicalSpecTemplate,
			Builtin:     true,
		},
		{
			ID:          "api_doc",
			Description: "API Documentation - Endpoints, parameters, and usage examples",
			Template:    apiDocTemplate,
			Builtin:     true,
		},
		{
			ID:          "user_guide",
			Description: "User Guide - End-user documentation and tutorials",
			Template:    userGuideTemplate,
			Builtin:     true,
		},
		{
			ID:          "technical_doc",
			Description: "Technical Documentation - Structured and well formatted documentation for technical scenarios",
			Template:    technicalDocTemplate,
			Builtin:     true,
		},
	}
}

const sopTemplate = `Create a comprehensive Standard Operating Procedure (SOP) document based on the following meeting content.

**Title:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a well-structured SOP document in markdown format that includes:

1. **Purpose and Scope** - What this SOP covers and why it exists
2. **Prerequisites** - Required knowledge, tools, or permissions
3. **Step-by-Step Procedure** - Detailed, numbered steps with clear instructions
4. **Decision Points** - What to do in different scenarios
5. **Quality Checks** - How to verify each step was completed correctly
6. **Troubleshooting** - Common issues and their solutions
7. **References** - Related documents or resources

Format the document with clear headings, bullet points, and code blocks where appropriate. Make it actionable and easy to follow for someone unfamiliar with the process.`

const runbookTemplate = `Create a comprehensive Operational Runbook based on the following meeting content.

**Title:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a well-structured runbook document in markdown format that includes:

1. **Overview** - System/service description and key components
2. **Architecture Diagram** - High-level system architecture (describe in text)
3. **Monitoring and Alerts** - Key metrics to watch and alert thresholds
4. **Common Issues** - Frequent problems and their symptoms
5. **Troubleshooting Procedures** - Step-by-step diagnostic and resolution steps
6. **Emergency Procedures** - Critical incident response steps
7. **Maintenance Tasks** - Regular maintenance procedures and schedules
8. **Escalation Paths** - When and how to escalate issues
9. **Contact Information** - Key personnel and their roles
10. **References** - Links to logs, dashboards, and related documentation

Focus on operational scenarios, include command examples, and make it practical for on-call engineers.`

const architectureTemplate = `Create comprehensive high-level architectural documentation based on the following meeting content.

**Title:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a well-structured architecture document in markdown format that includes:

1. **Executive Summary** - Brief overview of the system and its purpose
2. **System Overview** - High-level description of what the system does
3. **Architecture Principles** - Key design principles and constraints
4. **System Architecture** - Major components and their relationships
5. **Data Flow** - How data moves through the system
6. **Integration Points** - External systems and APIs
7. **Security Considerations** - Authentication, authorization, and data protection
8. **Scalability and Performance** - How the system handles load and growth
9. **Deployment Architecture** - Infrastructure and deployment considerations
10. **Technology Stack** - Key technologies and frameworks used
11. **Future Considerations** - Planned improvements and potential challenges

Focus on the big picture, avoid implementation details, and make it accessible to both technical and non-technical stakeholders.`

const implementationTemplate = `Create detailed implementation-level documentation based on the following meeting content.

**Title:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a comprehensive implementation document in markdown format that includes:

1. **Implementation Overview** - What is being implemented and why
2. **Technical Requirements** - Specific technical requirements and constraints
3. **Detailed Design** - Low-level design decisions and rationale
4. **Code Structure** - File organization, modules, and key classes/functions
5. **Database Schema** - Tables, relationships, and indexes (if applicable)
6. **API Specifications** - Detailed endpoint definitions with examples
7. **Configuration** - Environment variables, config files, and settings
8. **Testing Strategy** - Unit tests, integration tests, and test data
9. **Deployment Instructions** - Step-by-step deployment process
10. **Performance Considerations** - Optimization techniques and benchmarks
11. **Error Handling** - Exception handling and error recovery
12. **Logging and Monitoring** - What to log and how to monitor
13. **Code Examples** - Key implementation snippets and usage examples

Focus on technical details that developers need to understand, maintain, and extend the implementation.`

const meetingSummaryTemplate = `Create a comprehensive meeting summary based on the following content.

**Meeting Title:** {title}

**Meeting Content:**
{content}

**Additional Context:**
{context}

Please create a well-structured meeting summary in markdown format that includes:

1. **Meeting Details** - Date, attendees, and purpose
2. **Key Decisions** - Important decisions made during the meeting
3. **Action Items** - Tasks assigned with owners and due dates
4. **Discussion Points** - Main topics discussed and outcomes
5. **Next Steps** - What happens next and follow-up meetings
6. **Parking Lot** - Items tabled for future discussion
7. **Resources Mentioned** - Links, documents, or tools referenced

Extract the most important information and present it in a clear, actionable format.`

const technicalSpecTemplate = `Create a detailed technical specification based on the following meeting content.

**Feature/Component:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a comprehensive technical specification in markdown format that includes:

1. **Overview** - What is being specified and its purpose
2. **Functional Requirements** - What the system must do
3. **Non-Functional Requirements** - Performance, security, usability requirements
4. **User Stories** - Key user scenarios and acceptance criteria
5. **Technical Approach** - High-level technical solution
6. **Interface Specifications** - APIs, data formats, and protocols
7. **Data Models** - Data structures and relationships
8. **Security Requirements** - Authentication, authorization, and data protection
9. **Performance Requirements** - Response times, throughput, and scalability
10. **Testing Requirements** - Test scenarios and acceptance criteria
11. **Dependencies** - External systems, libraries, and services
12. **Risks and Assumptions** - Potential issues and assumptions made

Focus on providing clear, testable requirements that can guide implementation.`

const apiDocTemplate = `Create comprehensive API documentation based on the following meeting content.

**API Title:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create detailed API documentation in markdown format that includes:

1. **API Overview** - Purpose and capabilities of the API
2. **Authentication** - How to authenticate with the API
3. **Base URL and Versioning** - API base URL and version information
4. **Endpoints** - Detailed endpoint documentation including:
   - HTTP method and URL
   - Request parameters and body
   - Response format and status codes
   - Example requests and responses
5. **Data Models** - Schema definitions for request/response objects
6. **Error Handling** - Common error codes and their meanings
7. **Rate Limiting** - Request limits and throttling policies
8. **SDKs and Libraries** - Available client libraries
9. **Code Examples** - Sample code in different programming languages
10. **Changelog** - API version history and changes

Make it practical for developers to integrate with the API quickly.`

const userGuideTemplate = `Create a comprehensive user guide based on the following meeting content.

**Product/Feature:** {title}

**Source Content:**
{content}

**Additional Context:**
{context}

Please create a user-friendly guide in markdown format that includes:

1. **Getting Started** - Quick start guide for new users
2. **Overview** - What the product/feature does and key benefits
3. **Setup and Installation** - How to get started (if applicable)
4. **Basic Usage** - Core features and common tasks
5. **Step-by-Step Tutorials** - Detailed walkthroughs for key workflows
6. **Advanced Features** - More complex functionality and use cases
7. **Tips and Best Practices** - How to get the most out of the product
8. **Troubleshooting** - Common issues and solutions
9. **FAQ** - Frequently asked questions
10. **Support and Resources** - Where to get help and additional information

Write in a friendly, accessible tone that non-technical users can understand. Include screenshots descriptions where helpful.`

const technicalDocTemplate = `Create a comprehensive techhical document, written by a technical writer, based on the following content and context.

**Document Title:** {title}

**Initial Content:**
{content}

**Additional Context:**
{context}

Please create a well-structured technical document in markdown format that:

1. Emphasize clarity, conciseness, and accuracy in conveying technical information
2. Follows Microsoft style guide for document formatting
3. Expands the content and context provided by researching online for further context, and add citations for those references inline
4. Adds in any Mermaid flow charts to provide further clarity to contexts
5. Uses the ### markdown as a delimiter to break an existing document into multiple sections within the same document
6. Does not use periods, exclamation points, question marks, etc. on sentences within bulleted or numbered lists
7. Provides code snippets or other bread crumbs for further clarity

Return document in the format outlined in the above steps.`
